package student

import (
	"context"
	"time"

	"student-registry/internal/db"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Student is the stored record. Nested wire objects (name, address) are kept
// as flat columns; ToRecord rebuilds the nested JSON shape.
type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID              uuid.UUID  `bun:"id,pk,type:uuid"`
	Code            string     `bun:"code,notnull,unique"`
	NameFirst       string     `bun:"name_first,notnull"`
	NameMiddle      *string    `bun:"name_middle"`
	NameLast        string     `bun:"name_last,notnull"`
	BirthDate       time.Time  `bun:"birth_date,notnull"`
	AddressLine1    string     `bun:"address_line1,notnull"`
	AddressLine2    *string    `bun:"address_line2"`
	AddressCity     string     `bun:"address_city,notnull"`
	AddressDistrict string     `bun:"address_district,notnull"`
	ContactNumber   string     `bun:"contact_number,notnull"`
	Email           *string    `bun:"email"`
	DeletedAt       *time.Time `bun:"deleted_at"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Record is the wire representation of a student. Optional fields are omitted
// when absent; deletedAt is explicitly null while the record is active.
type Record struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          Name    `json:"name"`
	BirthDate     string  `json:"birthDate"`
	Age           int     `json:"age"`
	Address       Address `json:"address"`
	ContactNumber string  `json:"contactNumber"`
	Email         string  `json:"email,omitempty"`
	DeletedAt     *string `json:"deletedAt"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type Name struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	District string `json:"district"`
}

func (s *Student) ToRecord() Record {
	rec := Record{
		ID:   s.ID.String(),
		Code: s.Code,
		Name: Name{
			First: s.NameFirst,
			Last:  s.NameLast,
		},
		BirthDate: s.BirthDate.UTC().Format(time.RFC3339),
		Age:       Age(s.BirthDate),
		Address: Address{
			Line1:    s.AddressLine1,
			City:     s.AddressCity,
			District: s.AddressDistrict,
		},
		ContactNumber: s.ContactNumber,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if s.NameMiddle != nil {
		rec.Name.Middle = *s.NameMiddle
	}
	if s.AddressLine2 != nil {
		rec.Address.Line2 = *s.AddressLine2
	}
	if s.Email != nil {
		rec.Email = *s.Email
	}
	if s.DeletedAt != nil {
		deleted := s.DeletedAt.UTC().Format(time.RFC3339)
		rec.DeletedAt = &deleted
	}
	return rec
}

func toRecords(students []Student) []Record {
	records := make([]Record, 0, len(students))
	for i := range students {
		records = append(records, students[i].ToRecord())
	}
	return records
}

// Migrate prepares the students schema: both tables plus the indexes the query
// paths rely on. The email index is a partial unique index, so records without
// an email never collide; it is not deletion-aware, a soft-deleted record's
// email still blocks reuse.
func Migrate(ctx context.Context, bdb *bun.DB) error {
	if err := db.CreateTables(ctx, bdb, (*Student)(nil), (*Counter)(nil)); err != nil {
		return err
	}

	ddl := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS students_email_key ON students (email) WHERE email IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS students_address_district_idx ON students (address_district)`,
		`CREATE INDEX IF NOT EXISTS students_deleted_at_idx ON students (deleted_at)`,
		`CREATE INDEX IF NOT EXISTS students_created_at_idx ON students (created_at)`,
	}
	for _, stmt := range ddl {
		if _, err := bdb.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
