package student

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Districts is the fixed set of values accepted for address.district.
var Districts = []string{
	"Central",
	"North",
	"South",
	"East",
	"West",
	"North East",
	"North West",
	"South East",
	"South West",
	"Coastal",
}

func ValidDistrict(v string) bool {
	for _, d := range Districts {
		if d == v {
			return true
		}
	}
	return false
}

// Input is a candidate record for create, or a deep-partial patch for update.
// Nil pointers mean "not supplied".
type Input struct {
	Name          *NameInput    `json:"name"`
	BirthDate     *string       `json:"birthDate"`
	Address       *AddressInput `json:"address"`
	ContactNumber *string       `json:"contactNumber"`
	Email         *string       `json:"email"`
}

type NameInput struct {
	First  *string `json:"first"`
	Middle *string `json:"middle"`
	Last   *string `json:"last"`
}

type AddressInput struct {
	Line1    *string `json:"line1"`
	Line2    *string `json:"line2"`
	City     *string `json:"city"`
	District *string `json:"district"`
}

// Fields maps a dotted field path to its first failing message.
type Fields map[string]string

func (f Fields) add(path, msg string) {
	if _, ok := f[path]; !ok {
		f[path] = msg
	}
}

const (
	birthDateLayout = "2006-01-02"
	msgRequired     = "Required"
	msgAlpha        = "Alphabets only"
)

var (
	alphaRegex  = regexp.MustCompile(`^[A-Za-z]+$`)
	digitsRegex = regexp.MustCompile(`^\d{10}$`)
	emailRegex  = regexp.MustCompile(`^[A-Za-z0-9._%+\-']+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
)

// rule is one pure predicate over a trimmed value, paired with its message.
type rule struct {
	check func(v string) bool
	msg   string
}

// fieldRule binds the rules for a single dotted field path. For optional
// fields an empty (or whitespace-only) supplied value is valid; it later
// normalizes to "absent" on create and to a removal on update.
type fieldRule struct {
	path     string
	optional bool
	value    func(*Input) *string
	rules    []rule
}

func minRunes(n int, msg string) rule {
	return rule{func(v string) bool { return utf8.RuneCountInString(v) >= n }, msg}
}

func maxRunes(n int, msg string) rule {
	return rule{func(v string) bool { return utf8.RuneCountInString(v) <= n }, msg}
}

func matches(re *regexp.Regexp, msg string) rule {
	return rule{re.MatchString, msg}
}

func parseBirthDate(v string) (time.Time, error) {
	return time.Parse(birthDateLayout, v)
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

var studentRules = []fieldRule{
	{
		path:  "name.first",
		value: func(in *Input) *string { return nameField(in, func(n *NameInput) *string { return n.First }) },
		rules: []rule{
			minRunes(2, "First name must be at least 2 characters"),
			maxRunes(50, "First name must be at most 50 characters"),
			matches(alphaRegex, msgAlpha),
		},
	},
	{
		path:     "name.middle",
		optional: true,
		value:    func(in *Input) *string { return nameField(in, func(n *NameInput) *string { return n.Middle }) },
		rules: []rule{
			matches(alphaRegex, msgAlpha),
		},
	},
	{
		path:  "name.last",
		value: func(in *Input) *string { return nameField(in, func(n *NameInput) *string { return n.Last }) },
		rules: []rule{
			minRunes(2, "Last name must be at least 2 characters"),
			maxRunes(50, "Last name must be at most 50 characters"),
			matches(alphaRegex, msgAlpha),
		},
	},
	{
		path:  "birthDate",
		value: func(in *Input) *string { return in.BirthDate },
		rules: []rule{
			{
				check: func(v string) bool { _, err := parseBirthDate(v); return err == nil },
				msg:   "Invalid birth date",
			},
			{
				check: func(v string) bool { d, err := parseBirthDate(v); return err == nil && d.Before(todayUTC()) },
				msg:   "Birth date must be in the past",
			},
		},
	},
	{
		path:  "address.line1",
		value: func(in *Input) *string { return addressField(in, func(a *AddressInput) *string { return a.Line1 }) },
		rules: []rule{
			minRunes(5, "Address line 1 must be at least 5 characters"),
		},
	},
	{
		path:     "address.line2",
		optional: true,
		value:    func(in *Input) *string { return addressField(in, func(a *AddressInput) *string { return a.Line2 }) },
		rules: []rule{
			maxRunes(100, "Address line 2 is too long"),
		},
	},
	{
		path:  "address.city",
		value: func(in *Input) *string { return addressField(in, func(a *AddressInput) *string { return a.City }) },
		rules: []rule{
			minRunes(2, "City must be at least 2 characters"),
			matches(alphaRegex, msgAlpha),
		},
	},
	{
		path:  "address.district",
		value: func(in *Input) *string { return addressField(in, func(a *AddressInput) *string { return a.District }) },
		rules: []rule{
			{check: ValidDistrict, msg: "District must be selected from the list"},
		},
	},
	{
		path:  "contactNumber",
		value: func(in *Input) *string { return in.ContactNumber },
		rules: []rule{
			matches(digitsRegex, "Contact number must be exactly 10 digits"),
		},
	},
	{
		path:     "email",
		optional: true,
		value:    func(in *Input) *string { return in.Email },
		rules: []rule{
			matches(emailRegex, "Invalid email"),
		},
	},
}

func nameField(in *Input, pick func(*NameInput) *string) *string {
	if in.Name == nil {
		return nil
	}
	return pick(in.Name)
}

func addressField(in *Input, pick func(*AddressInput) *string) *string {
	if in.Address == nil {
		return nil
	}
	return pick(in.Address)
}

// Validate checks in against the rule table in a single pass, collecting one
// message per offending field path (first failing rule wins). With partial
// set, absent fields are skipped; otherwise every non-optional field must be
// present.
func Validate(in *Input, partial bool) Fields {
	fields := Fields{}

	if !partial {
		if in.Name == nil {
			fields.add("name", msgRequired)
		}
		if in.Address == nil {
			fields.add("address", msgRequired)
		}
	}

	for _, fr := range studentRules {
		v := fr.value(in)
		if v == nil {
			if !partial && !fr.optional && !groupMissing(fields, fr.path) {
				fields.add(fr.path, msgRequired)
			}
			continue
		}

		trimmed := strings.TrimSpace(*v)
		if fr.optional && trimmed == "" {
			continue
		}
		for _, r := range fr.rules {
			if !r.check(trimmed) {
				fields.add(fr.path, r.msg)
				break
			}
		}
	}

	return fields
}

// groupMissing reports whether the path's parent object was already flagged
// missing, so its children are not flagged a second time.
func groupMissing(fields Fields, path string) bool {
	if i := strings.IndexByte(path, '.'); i > 0 {
		_, ok := fields[path[:i]]
		return ok
	}
	return false
}

// normalizeOptional trims v and maps empty to nil, mirroring how optional
// fields are stored only when non-empty.
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
