package member

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the member id resolves to nothing.
var ErrNotFound = errors.New("member not found")

// UpdateInput carries a partial local edit. Nil fields are left untouched.
type UpdateInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

type MemberService interface {
	Get(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filters Filters, limit, skip int64) ([]Member, int64, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Member, error)
	Delete(ctx context.Context, id string) error
}

type MemberServiceImpl struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) MemberService {
	return &MemberServiceImpl{repo: repo}
}

func (s *MemberServiceImpl) Get(ctx context.Context, id string) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *MemberServiceImpl) List(ctx context.Context, filters Filters, limit, skip int64) ([]Member, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.List(ctx, filters, limit, skip)
}

// Update patches the local mirror row. The remote member is untouched and
// the next member sync will overwrite these fields again.
func (s *MemberServiceImpl) Update(ctx context.Context, id string, input UpdateInput) (*Member, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		m.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		m.LastName = *input.LastName
	}
	if input.Email != nil {
		m.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		m.PhoneNumber = *input.PhoneNumber
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the local mirror row only. The remote member is untouched
// and the next member sync will recreate the row if it still exists there.
func (s *MemberServiceImpl) Delete(ctx context.Context, id string) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, m.ID)
}
