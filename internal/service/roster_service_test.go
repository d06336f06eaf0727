package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
)

func newTestUser(role model.Role) *model.User {
	return &model.User{
		ID:    primitive.NewObjectID(),
		Email: "account@kidnest.example",
		Role:  role,
	}
}

func TestRosterResolve_ParentOneEntryPerChild(t *testing.T) {
	user := newTestUser(model.RoleParent)
	older := newTestChild("Group A")
	younger := newTestChild("Group A")
	parent := &model.Parent{
		ID:       primitive.NewObjectID(),
		UserID:   user.ID,
		Children: []primitive.ObjectID{older.ID, younger.ID},
	}
	svc := NewRosterService(newFakeParentStore(parent), newFakeTeacherStore(), newFakeChildStore(older, younger), zerolog.Nop())

	entries, err := svc.Resolve(context.Background(), user)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Siblings in the same classroom stay distinct entries, profile order.
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Child == nil || entries[0].Child.ID != older.ID.Hex() {
		t.Errorf("entry 0 child = %+v, want %s", entries[0].Child, older.ID.Hex())
	}
	if entries[1].Child == nil || entries[1].Child.ID != younger.ID.Hex() {
		t.Errorf("entry 1 child = %+v, want %s", entries[1].Child, younger.ID.Hex())
	}
	for i, entry := range entries {
		if entry.Classroom != "Group A" {
			t.Errorf("entry %d classroom = %q, want Group A", i, entry.Classroom)
		}
	}
}

func TestRosterResolve_ParentSkipsDanglingChild(t *testing.T) {
	user := newTestUser(model.RoleParent)
	child := newTestChild("Group B")
	parent := &model.Parent{
		ID:       primitive.NewObjectID(),
		UserID:   user.ID,
		Children: []primitive.ObjectID{primitive.NewObjectID(), child.ID},
	}
	svc := NewRosterService(newFakeParentStore(parent), newFakeTeacherStore(), newFakeChildStore(child), zerolog.Nop())

	entries, err := svc.Resolve(context.Background(), user)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Child.ID != child.ID.Hex() {
		t.Errorf("surviving entry child = %s, want %s", entries[0].Child.ID, child.ID.Hex())
	}
}

func TestRosterResolve_TeacherOneEntryPerClassroom(t *testing.T) {
	user := newTestUser(model.RoleTeacher)
	teacher := &model.Teacher{
		ID:                 primitive.NewObjectID(),
		UserID:             user.ID,
		AssignedClassrooms: []string{"Group A", "Group C"},
	}
	svc := NewRosterService(newFakeParentStore(), newFakeTeacherStore(teacher), newFakeChildStore(), zerolog.Nop())

	entries, err := svc.Resolve(context.Background(), user)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for i, want := range []string{"Group A", "Group C"} {
		if entries[i].Classroom != want {
			t.Errorf("entry %d classroom = %q, want %q", i, entries[i].Classroom, want)
		}
		if entries[i].Child != nil {
			t.Errorf("entry %d carries a child descriptor", i)
		}
	}
}

func TestRosterResolve_AdminUsesParentProfile(t *testing.T) {
	user := newTestUser(model.RoleAdmin)
	child := newTestChild("Group A")
	parent := &model.Parent{
		ID:       primitive.NewObjectID(),
		UserID:   user.ID,
		Children: []primitive.ObjectID{child.ID},
	}
	svc := NewRosterService(newFakeParentStore(parent), newFakeTeacherStore(), newFakeChildStore(child), zerolog.Nop())

	entries, err := svc.Resolve(context.Background(), user)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(entries) != 1 || entries[0].Child == nil {
		t.Fatalf("got %+v, want one child entry", entries)
	}
}

func TestRosterResolve_MissingProfile(t *testing.T) {
	svc := NewRosterService(newFakeParentStore(), newFakeTeacherStore(), newFakeChildStore(), zerolog.Nop())

	for _, role := range []model.Role{model.RoleParent, model.RoleTeacher} {
		if _, err := svc.Resolve(context.Background(), newTestUser(role)); !errors.Is(err, ErrNotFound) {
			t.Errorf("role %s: got %v, want ErrNotFound", role, err)
		}
	}
}

func TestRosterResolve_UnknownRoleForbidden(t *testing.T) {
	svc := NewRosterService(newFakeParentStore(), newFakeTeacherStore(), newFakeChildStore(), zerolog.Nop())

	user := newTestUser(model.Role("intruder"))
	if _, err := svc.Resolve(context.Background(), user); !errors.Is(err, ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestRosterResolve_ChildStoreFailurePropagates(t *testing.T) {
	user := newTestUser(model.RoleParent)
	parent := &model.Parent{
		ID:       primitive.NewObjectID(),
		UserID:   user.ID,
		Children: []primitive.ObjectID{primitive.NewObjectID()},
	}
	children := newFakeChildStore()
	children.GetByIDError = errors.New("connection reset")
	svc := NewRosterService(newFakeParentStore(parent), newFakeTeacherStore(), children, zerolog.Nop())

	if _, err := svc.Resolve(context.Background(), user); err == nil {
		t.Fatal("expected store failure to propagate")
	}
}
