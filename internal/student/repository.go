package student

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"student-registry/internal/db"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Repository interface {
	Create(ctx context.Context, student *Student) (*Student, error)
	FindByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*Student, error)
	List(ctx context.Context, params ListParams) (*Page, error)
	UpdateActive(ctx context.Context, id uuid.UUID, change Change) (*Student, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (*Student, error)
}

type repository struct {
	session *db.Session
}

func NewRepository(session *db.Session) Repository {
	return &repository{session: session}
}

func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	bdb, err := r.session.DB(ctx)
	if err != nil {
		return nil, err
	}

	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}

	_, err = bdb.NewInsert().Model(student).Returning("*").Exec(ctx)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return student, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*Student, error) {
	bdb, err := r.session.DB(ctx)
	if err != nil {
		return nil, err
	}

	student := new(Student)
	q := bdb.NewSelect().Model(student).Where("s.id = ?", id)
	if !includeDeleted {
		q = q.Where("s.deleted_at IS NULL")
	}

	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return student, nil
}

func (r *repository) List(ctx context.Context, params ListParams) (*Page, error) {
	bdb, err := r.session.DB(ctx)
	if err != nil {
		return nil, err
	}

	var students []Student
	q := bdb.NewSelect().Model(&students)
	q = params.apply(q).
		OrderExpr(params.order()).
		Limit(params.Limit).
		Offset(params.offset())

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:      students,
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: TotalPages(total, params.Limit),
	}, nil
}

// UpdateActive applies the change to a record that is still active, as one
// conditional UPDATE; a soft-deleted or missing record reports not-found and
// is never resurrected.
func (r *repository) UpdateActive(ctx context.Context, id uuid.UUID, change Change) (*Student, error) {
	bdb, err := r.session.DB(ctx)
	if err != nil {
		return nil, err
	}

	student := new(Student)
	q := bdb.NewUpdate().Model(student).
		Where("s.id = ?", id).
		Where("s.deleted_at IS NULL")

	for col, value := range change.Assign {
		q = q.Set("? = ?", bun.Ident(col), value)
	}
	for _, col := range change.Remove {
		q = q.Set("? = NULL", bun.Ident(col))
	}
	q = q.Set("updated_at = ?", time.Now().UTC())

	res, err := q.Returning("*").Exec(ctx)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return student, nil
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) (*Student, error) {
	bdb, err := r.session.DB(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	student := new(Student)
	res, err := bdb.NewUpdate().Model(student).
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Where("s.id = ?", id).
		Where("s.deleted_at IS NULL").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return student, nil
}

// mapUniqueViolation translates a Postgres unique violation into a
// DuplicateError naming the offending field; other errors pass through.
func mapUniqueViolation(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == "23505" {
		field := "email"
		if strings.Contains(pgErr.Field('n'), "code") {
			field = "code"
		}
		return &DuplicateError{Field: field}
	}
	return err
}
