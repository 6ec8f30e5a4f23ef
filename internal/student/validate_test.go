package student

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func validCreateInput() *Input {
	return &Input{
		Name: &NameInput{
			First: ptr("Avery"),
			Last:  ptr("Johnson"),
		},
		BirthDate: ptr("2010-05-01"),
		Address: &AddressInput{
			Line1:    ptr("12 Rose St"),
			City:     ptr("Springfield"),
			District: ptr("North"),
		},
		ContactNumber: ptr("0123456789"),
	}
}

func TestValidateCreate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		fields := Validate(validCreateInput(), false)
		assert.Empty(t, fields)
	})

	t.Run("valid input with optionals passes", func(t *testing.T) {
		in := validCreateInput()
		in.Name.Middle = ptr("Lee")
		in.Address.Line2 = ptr("Apt 4")
		in.Email = ptr("avery@example.com")

		fields := Validate(in, false)
		assert.Empty(t, fields)
	})

	t.Run("missing groups are flagged once", func(t *testing.T) {
		fields := Validate(&Input{}, false)

		assert.Equal(t, "Required", fields["name"])
		assert.Equal(t, "Required", fields["address"])
		assert.Equal(t, "Required", fields["birthDate"])
		assert.Equal(t, "Required", fields["contactNumber"])
		assert.NotContains(t, fields, "name.first")
		assert.NotContains(t, fields, "address.city")
		assert.NotContains(t, fields, "email")
	})

	t.Run("missing field inside present group", func(t *testing.T) {
		in := validCreateInput()
		in.Name.Last = nil

		fields := Validate(in, false)
		assert.Equal(t, "Required", fields["name.last"])
	})

	t.Run("first name too short", func(t *testing.T) {
		in := validCreateInput()
		in.Name.First = ptr("A")

		fields := Validate(in, false)
		assert.Equal(t, "First name must be at least 2 characters", fields["name.first"])
	})

	t.Run("non-alphabetic name", func(t *testing.T) {
		in := validCreateInput()
		in.Name.First = ptr("Avery7")

		fields := Validate(in, false)
		assert.Equal(t, "Alphabets only", fields["name.first"])
	})

	t.Run("first failing rule wins per path", func(t *testing.T) {
		in := validCreateInput()
		in.Name.First = ptr("7")

		fields := Validate(in, false)
		assert.Equal(t, "First name must be at least 2 characters", fields["name.first"])
	})

	t.Run("unparseable birth date", func(t *testing.T) {
		in := validCreateInput()
		in.BirthDate = ptr("not-a-date")

		fields := Validate(in, false)
		assert.Equal(t, "Invalid birth date", fields["birthDate"])
	})

	t.Run("birth date must be in the past", func(t *testing.T) {
		in := validCreateInput()
		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(birthDateLayout)
		in.BirthDate = &tomorrow

		fields := Validate(in, false)
		assert.Equal(t, "Birth date must be in the past", fields["birthDate"])
	})

	t.Run("today is not in the past", func(t *testing.T) {
		in := validCreateInput()
		today := time.Now().UTC().Format(birthDateLayout)
		in.BirthDate = &today

		fields := Validate(in, false)
		assert.Equal(t, "Birth date must be in the past", fields["birthDate"])
	})

	t.Run("unknown district", func(t *testing.T) {
		in := validCreateInput()
		in.Address.District = ptr("Midtown")

		fields := Validate(in, false)
		assert.Equal(t, "District must be selected from the list", fields["address.district"])
	})

	t.Run("short address line1", func(t *testing.T) {
		in := validCreateInput()
		in.Address.Line1 = ptr("1 A")

		fields := Validate(in, false)
		assert.Equal(t, "Address line 1 must be at least 5 characters", fields["address.line1"])
	})

	t.Run("contact number must be ten digits", func(t *testing.T) {
		for _, bad := range []string{"12345", "01234567890", "01234abcde"} {
			in := validCreateInput()
			in.ContactNumber = ptr(bad)

			fields := Validate(in, false)
			assert.Equal(t, "Contact number must be exactly 10 digits", fields["contactNumber"], "input %q", bad)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		in := validCreateInput()
		in.Email = ptr("not-an-email")

		fields := Validate(in, false)
		assert.Equal(t, "Invalid email", fields["email"])
	})

	t.Run("empty optional fields are valid", func(t *testing.T) {
		in := validCreateInput()
		in.Name.Middle = ptr("")
		in.Address.Line2 = ptr("  ")
		in.Email = ptr("")

		fields := Validate(in, false)
		assert.Empty(t, fields)
	})
}

func TestValidatePartial(t *testing.T) {
	t.Run("empty patch has no rule failures", func(t *testing.T) {
		fields := Validate(&Input{}, true)
		assert.Empty(t, fields)
	})

	t.Run("only supplied fields are checked", func(t *testing.T) {
		in := &Input{
			Name: &NameInput{First: ptr("A")},
		}

		fields := Validate(in, true)
		assert.Equal(t, "First name must be at least 2 characters", fields["name.first"])
		assert.Len(t, fields, 1)
	})

	t.Run("supplied empty required field still fails", func(t *testing.T) {
		in := &Input{
			Address: &AddressInput{City: ptr("")},
		}

		fields := Validate(in, true)
		assert.Equal(t, "City must be at least 2 characters", fields["address.city"])
	})

	t.Run("valid partial passes", func(t *testing.T) {
		in := &Input{Email: ptr("Avery@Example.com")}
		assert.Empty(t, Validate(in, true))
	})
}
