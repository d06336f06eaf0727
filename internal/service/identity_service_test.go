package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
)

func TestIdentityResolve(t *testing.T) {
	user := newTestUser(model.RoleParent)
	svc := NewIdentityService(newFakeUserStore(user))

	tests := []struct {
		name        string
		principalID string
		wantErr     error
	}{
		{"known_account", user.ID.Hex(), nil},
		{"unknown_account", primitive.NewObjectID().Hex(), ErrNotFound},
		{"malformed_id", "definitely-not-hex", ErrNotFound},
		{"empty_id", "", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Resolve(context.Background(), tt.principalID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.ID != user.ID {
				t.Errorf("resolved %s, want %s", got.ID.Hex(), user.ID.Hex())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := newTestUser(model.RoleAdmin)
	parent := newTestUser(model.RoleParent)
	svc := NewIdentityService(newFakeUserStore(admin, parent))

	tests := []struct {
		name        string
		principalID string
		allowed     []model.Role
		wantErr     error
	}{
		{"admin_allowed", admin.ID.Hex(), []model.Role{model.RoleAdmin}, nil},
		{"parent_in_allowed_set", parent.ID.Hex(), []model.Role{model.RoleParent, model.RoleAdmin}, nil},
		{"parent_not_admin", parent.ID.Hex(), []model.Role{model.RoleAdmin}, ErrForbidden},
		{"unknown_principal", primitive.NewObjectID().Hex(), []model.Role{model.RoleAdmin}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RequireRole(context.Background(), tt.principalID, tt.allowed...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}
