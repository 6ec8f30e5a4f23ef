package student

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, in *Input) (*Student, error)
	Get(ctx context.Context, id string, includeDeleted bool) (*Student, error)
	List(ctx context.Context, params ListParams) (*Page, error)
	Update(ctx context.Context, id string, in *Input) (*Student, error)
	Delete(ctx context.Context, id string) (*Student, error)
}

type service struct {
	repo  Repository
	codes CodeGenerator
}

func NewService(repo Repository, codes CodeGenerator) Service {
	return &service{
		repo:  repo,
		codes: codes,
	}
}

func (s *service) Create(ctx context.Context, in *Input) (*Student, error) {
	if fields := Validate(in, false); len(fields) > 0 {
		return nil, newValidationError("Invalid student data", fields)
	}

	// A storage failure past this point strands the issued code; the counter
	// is not rolled back, so codes stay monotonic but not contiguous.
	code, err := s.codes.NextCode(ctx)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, BuildRecord(in, code))
}

func (s *service) Get(ctx context.Context, id string, includeDeleted bool) (*Student, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.FindByID(ctx, uid, includeDeleted)
}

func (s *service) List(ctx context.Context, params ListParams) (*Page, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Update(ctx context.Context, id string, in *Input) (*Student, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if fields := Validate(in, true); len(fields) > 0 {
		return nil, newValidationError("Invalid student data", fields)
	}

	change := BuildPatch(in)
	if change.Empty() {
		return nil, newValidationError("No fields to update", nil)
	}

	return s.repo.UpdateActive(ctx, uid, change)
}

func (s *service) Delete(ctx context.Context, id string) (*Student, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.SoftDelete(ctx, uid)
}
