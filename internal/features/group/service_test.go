package group

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGroupRepo struct {
	groups map[string]*Group
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[string]*Group)}
}

func (f *fakeGroupRepo) Create(ctx context.Context, g *Group) error {
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	cp := *g
	f.groups[g.ID.Hex()] = &cp
	return nil
}

func (f *fakeGroupRepo) Update(ctx context.Context, g *Group) error {
	if _, ok := f.groups[g.ID.Hex()]; !ok {
		return errors.New("not found")
	}
	cp := *g
	f.groups[g.ID.Hex()] = &cp
	return nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id string) (*Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGroupRepo) GetBySpondID(ctx context.Context, spondID string) (*Group, error) {
	return nil, nil
}

func (f *fakeGroupRepo) List(ctx context.Context, search string, limit, skip int64) ([]Group, int64, error) {
	return nil, 0, nil
}

func (f *fakeGroupRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.groups, id.Hex())
	return nil
}

func (f *fakeGroupRepo) EnsureIndexes(ctx context.Context) error { return nil }

func strPtr(s string) *string { return &s }

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewGroupService(repo)

	seed := &Group{Name: "Oldtimers", Description: "Veterans team"}
	if err := repo.Create(context.Background(), seed); err != nil {
		t.Fatal(err)
	}

	g, err := svc.Update(context.Background(), seed.ID.Hex(), UpdateInput{
		Description: strPtr("Veterans, 35 and up"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if g.Name != "Oldtimers" {
		t.Errorf("Name = %q, untouched fields must survive", g.Name)
	}
	if g.Description != "Veterans, 35 and up" {
		t.Errorf("Description = %q", g.Description)
	}

	stored, _ := repo.GetByID(context.Background(), seed.ID.Hex())
	if stored.Description != "Veterans, 35 and up" {
		t.Error("patch must be persisted")
	}
}

func TestUpdateUnknownGroup(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepo())

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), UpdateInput{
		Name: strPtr("Nobody"),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
