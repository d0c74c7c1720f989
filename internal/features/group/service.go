package group

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the group id resolves to nothing.
var ErrNotFound = errors.New("group not found")

// UpdateInput carries a partial local edit. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type GroupService interface {
	Get(ctx context.Context, id string) (*Group, error)
	List(ctx context.Context, search string, limit, skip int64) ([]Group, int64, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Group, error)
	Delete(ctx context.Context, id string) error
}

type GroupServiceImpl struct {
	repo GroupRepository
}

func NewGroupService(repo GroupRepository) GroupService {
	return &GroupServiceImpl{repo: repo}
}

func (s *GroupServiceImpl) Get(ctx context.Context, id string) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *GroupServiceImpl) List(ctx context.Context, search string, limit, skip int64) ([]Group, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.List(ctx, search, limit, skip)
}

// Update patches the local mirror row. The remote group is untouched and
// the next group sync will overwrite these fields again.
func (s *GroupServiceImpl) Update(ctx context.Context, id string, input UpdateInput) (*Group, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		g.Name = *input.Name
	}
	if input.Description != nil {
		g.Description = *input.Description
	}
	g.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes the local mirror row only. The remote group is untouched
// and the next group sync will recreate the row if it still exists there.
func (s *GroupServiceImpl) Delete(ctx context.Context, id string) error {
	g, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, g.ID)
}
