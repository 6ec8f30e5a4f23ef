package student

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecord(t *testing.T) {
	middle := "Lee"
	email := "avery@example.com"
	now := time.Date(2024, time.March, 10, 12, 30, 0, 0, time.UTC)

	s := &Student{
		ID:              uuid.New(),
		Code:            "STU_0007",
		NameFirst:       "Avery",
		NameMiddle:      &middle,
		NameLast:        "Johnson",
		BirthDate:       time.Date(2010, time.May, 1, 0, 0, 0, 0, time.UTC),
		AddressLine1:    "12 Rose St",
		AddressCity:     "Springfield",
		AddressDistrict: "North",
		ContactNumber:   "0123456789",
		Email:           &email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	rec := s.ToRecord()

	assert.Equal(t, s.ID.String(), rec.ID)
	assert.Equal(t, "STU_0007", rec.Code)
	assert.Equal(t, "Lee", rec.Name.Middle)
	assert.Equal(t, "2010-05-01T00:00:00Z", rec.BirthDate)
	assert.Equal(t, 14, rec.Age)
	assert.Equal(t, "avery@example.com", rec.Email)
	assert.Nil(t, rec.DeletedAt)
}

func TestRecordJSONShape(t *testing.T) {
	t.Run("absent optionals are omitted, deletedAt is null", func(t *testing.T) {
		s := &Student{
			ID:              uuid.New(),
			Code:            "STU_0001",
			NameFirst:       "Avery",
			NameLast:        "Johnson",
			BirthDate:       time.Date(2010, time.May, 1, 0, 0, 0, 0, time.UTC),
			AddressLine1:    "12 Rose St",
			AddressCity:     "Springfield",
			AddressDistrict: "North",
			ContactNumber:   "0123456789",
			CreatedAt:       time.Now().UTC(),
			UpdatedAt:       time.Now().UTC(),
		}

		raw, err := json.Marshal(s.ToRecord())
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &decoded))

		assert.NotContains(t, decoded, "email")
		assert.Contains(t, decoded, "deletedAt")
		assert.Nil(t, decoded["deletedAt"])

		name := decoded["name"].(map[string]interface{})
		assert.NotContains(t, name, "middle")

		address := decoded["address"].(map[string]interface{})
		assert.NotContains(t, address, "line2")
	})

	t.Run("deletedAt set when soft-deleted", func(t *testing.T) {
		deleted := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
		s := &Student{
			ID:        uuid.New(),
			BirthDate: time.Date(2010, time.May, 1, 0, 0, 0, 0, time.UTC),
			DeletedAt: &deleted,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}

		rec := s.ToRecord()
		require.NotNil(t, rec.DeletedAt)
		assert.Equal(t, "2024-06-01T10:00:00Z", *rec.DeletedAt)
	})
}
