package student

import "strings"

// Change is the merged outcome of a partial patch: column assignments plus
// columns to clear. Optional fields supplied as empty strings become
// removals; required fields present in the patch are always assignments.
type Change struct {
	Assign map[string]interface{}
	Remove []string
}

func (c Change) Empty() bool {
	return len(c.Assign) == 0 && len(c.Remove) == 0
}

// BuildPatch converts a validated deep-partial patch into a Change. Fields
// absent from the patch are left untouched.
func BuildPatch(in *Input) Change {
	c := Change{Assign: map[string]interface{}{}}

	if in.Name != nil {
		if in.Name.First != nil {
			c.Assign["name_first"] = strings.TrimSpace(*in.Name.First)
		}
		if in.Name.Last != nil {
			c.Assign["name_last"] = strings.TrimSpace(*in.Name.Last)
		}
		if in.Name.Middle != nil {
			if middle := normalizeOptional(in.Name.Middle); middle != nil {
				c.Assign["name_middle"] = *middle
			} else {
				c.Remove = append(c.Remove, "name_middle")
			}
		}
	}

	if in.BirthDate != nil {
		birth, _ := parseBirthDate(strings.TrimSpace(*in.BirthDate))
		c.Assign["birth_date"] = birth
	}

	if in.Address != nil {
		if in.Address.Line1 != nil {
			c.Assign["address_line1"] = strings.TrimSpace(*in.Address.Line1)
		}
		if in.Address.City != nil {
			c.Assign["address_city"] = strings.TrimSpace(*in.Address.City)
		}
		if in.Address.District != nil {
			c.Assign["address_district"] = strings.TrimSpace(*in.Address.District)
		}
		if in.Address.Line2 != nil {
			if line2 := normalizeOptional(in.Address.Line2); line2 != nil {
				c.Assign["address_line2"] = *line2
			} else {
				c.Remove = append(c.Remove, "address_line2")
			}
		}
	}

	if in.ContactNumber != nil {
		c.Assign["contact_number"] = strings.TrimSpace(*in.ContactNumber)
	}

	if in.Email != nil {
		if email := normalizeOptional(in.Email); email != nil {
			c.Assign["email"] = strings.ToLower(*email)
		} else {
			c.Remove = append(c.Remove, "email")
		}
	}

	return c
}

// BuildRecord assembles a new Student from a fully validated create input.
func BuildRecord(in *Input, code string) *Student {
	birth, _ := parseBirthDate(strings.TrimSpace(*in.BirthDate))

	s := &Student{
		Code:            code,
		NameFirst:       strings.TrimSpace(*in.Name.First),
		NameMiddle:      normalizeOptional(in.Name.Middle),
		NameLast:        strings.TrimSpace(*in.Name.Last),
		BirthDate:       birth,
		AddressLine1:    strings.TrimSpace(*in.Address.Line1),
		AddressLine2:    normalizeOptional(in.Address.Line2),
		AddressCity:     strings.TrimSpace(*in.Address.City),
		AddressDistrict: strings.TrimSpace(*in.Address.District),
		ContactNumber:   strings.TrimSpace(*in.ContactNumber),
	}
	if email := normalizeOptional(in.Email); email != nil {
		lowered := strings.ToLower(*email)
		s.Email = &lowered
	}
	return s
}
