package member

import (
	"context"
	"errors"
	"testing"

	"club-sync/internal/spond"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMemberRepo struct {
	members map[string]*Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*Member)}
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *Member) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	cp := *m
	f.members[m.ID.Hex()] = &cp
	return nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, m *Member) error {
	if _, ok := f.members[m.ID.Hex()]; !ok {
		return errors.New("not found")
	}
	cp := *m
	f.members[m.ID.Hex()] = &cp
	return nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id string) (*Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) GetBySpondID(ctx context.Context, spondID string) (*Member, error) {
	return nil, nil
}

func (f *fakeMemberRepo) List(ctx context.Context, filters Filters, limit, skip int64) ([]Member, int64, error) {
	return nil, 0, nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.members, id.Hex())
	return nil
}

func (f *fakeMemberRepo) ProfileLookup(ctx context.Context) (map[string]spond.RawRecord, error) {
	return nil, nil
}

func (f *fakeMemberRepo) EnsureIndexes(ctx context.Context) error { return nil }

func strPtr(s string) *string { return &s }

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewMemberService(repo)

	seed := &Member{FirstName: "Ola", LastName: "Nordmann", Email: "ola@example.com"}
	if err := repo.Create(context.Background(), seed); err != nil {
		t.Fatal(err)
	}

	m, err := svc.Update(context.Background(), seed.ID.Hex(), UpdateInput{
		Email:       strPtr("new@example.com"),
		PhoneNumber: strPtr("+47 12345678"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if m.FirstName != "Ola" || m.LastName != "Nordmann" {
		t.Errorf("name changed to %q %q, untouched fields must survive", m.FirstName, m.LastName)
	}
	if m.Email != "new@example.com" || m.PhoneNumber != "+47 12345678" {
		t.Errorf("patched fields = %q / %q", m.Email, m.PhoneNumber)
	}

	stored, _ := repo.GetByID(context.Background(), seed.ID.Hex())
	if stored.Email != "new@example.com" {
		t.Error("patch must be persisted")
	}
	if stored.UpdatedAt.IsZero() {
		t.Error("UpdatedAt must be set")
	}
}

func TestUpdateUnknownMember(t *testing.T) {
	svc := NewMemberService(newFakeMemberRepo())

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), UpdateInput{
		FirstName: strPtr("Kari"),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewMemberService(repo)

	seed := &Member{FirstName: "Ola"}
	if err := repo.Create(context.Background(), seed); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), seed.ID.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.members[seed.ID.Hex()]; ok {
		t.Error("row must be removed")
	}
}
