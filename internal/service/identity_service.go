package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
)

// IdentityService maps an authenticated principal id to its account
// record and gates privileged operations on role membership. Read-only.
type IdentityService struct {
	users UserStore
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(users UserStore) *IdentityService {
	return &IdentityService{users: users}
}

// Resolve returns the account for a verified principal id.
// The id is treated as opaque beyond its 24-hex-character shape; a
// malformed or unknown id resolves to ErrNotFound.
func (s *IdentityService) Resolve(ctx context.Context, principalID string) (*model.User, error) {
	id, err := primitive.ObjectIDFromHex(principalID)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

// RequireRole resolves the principal and fails with ErrForbidden unless
// its role is in the allowed set. Every privileged operation calls this
// before touching any other entity.
func (s *IdentityService) RequireRole(ctx context.Context, principalID string, allowed ...model.Role) (*model.User, error) {
	user, err := s.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	for _, role := range allowed {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, ErrForbidden
}
