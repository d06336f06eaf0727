package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
	"github.com/kidnest/kidnest-backend/internal/repository"
)

// UserService handles account registration and role management.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetByEmail retrieves an account by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

// Register creates a new parent or teacher account. passwordHash must
// already be hashed; the service never sees plaintext credentials.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest, passwordHash string) (*model.User, error) {
	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole changes the role of the account with the target email. The
// caller is responsible for the admin gate (IdentityService.RequireRole).
func (s *UserService) SetRole(ctx context.Context, targetEmail string, newRole model.Role) error {
	return mapNotFound(s.users.SetRoleByEmail(ctx, targetEmail, newRole))
}

// RegisterFCMToken stores a device push token on the account.
func (s *UserService) RegisterFCMToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	return mapNotFound(s.users.SetFCMToken(ctx, userID, token))
}
