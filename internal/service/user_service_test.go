package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
)

func TestRegister(t *testing.T) {
	existing := newTestUser(model.RoleParent)
	existing.Email = "taken@kidnest.example"
	store := newFakeUserStore(existing)
	svc := NewUserService(store)

	req := &model.RegisterRequest{
		Email:     "fresh@kidnest.example",
		FirstName: "Mila",
		LastName:  "Berg",
		Role:      model.RoleParent,
	}
	user, err := svc.Register(context.Background(), req, "$2a$10$hash")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID.IsZero() {
		t.Error("registered account has no id")
	}
	if user.PasswordHash != "$2a$10$hash" {
		t.Error("password hash not stored as given")
	}

	req.Email = existing.Email
	if _, err := svc.Register(context.Background(), req, "$2a$10$hash"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken", err)
	}
}

func TestSetRole(t *testing.T) {
	target := newTestUser(model.RoleParent)
	target.Email = "promote@kidnest.example"
	store := newFakeUserStore(target)
	svc := NewUserService(store)

	if err := svc.SetRole(context.Background(), target.Email, model.RoleAdmin); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if target.Role != model.RoleAdmin {
		t.Errorf("role = %s, want admin", target.Role)
	}

	if err := svc.SetRole(context.Background(), "nobody@kidnest.example", model.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRegisterFCMToken(t *testing.T) {
	user := newTestUser(model.RoleParent)
	store := newFakeUserStore(user)
	svc := NewUserService(store)

	token := "fcm-device-token"
	if err := svc.RegisterFCMToken(context.Background(), user.ID, token); err != nil {
		t.Fatalf("RegisterFCMToken: %v", err)
	}
	if user.FCMToken != token {
		t.Errorf("token = %q, want %q", user.FCMToken, token)
	}

	if err := svc.RegisterFCMToken(context.Background(), primitive.NewObjectID(), token); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
