package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
)

// Store interfaces consumed by the services. The repository package
// provides the MongoDB implementations; tests substitute in-memory
// fakes. All lookup methods return repository.ErrNotFound on a miss.

// UserStore provides account persistence.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	SetRoleByEmail(ctx context.Context, email string, role model.Role) error
	SetFCMToken(ctx context.Context, id primitive.ObjectID, token string) error
}

// ParentStore provides parent profile lookups.
type ParentStore interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*model.Parent, error)
}

// TeacherStore provides teacher profile lookups.
type TeacherStore interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*model.Teacher, error)
}

// ChildStore provides child persistence including the child side of the
// event-feedback relationship.
type ChildStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Child, error)
	AddEventFeedback(ctx context.Context, childID, eventID primitive.ObjectID) error
	RemoveEventFeedback(ctx context.Context, childID, eventID primitive.ObjectID) error
	ListByEventFeedback(ctx context.Context, eventID primitive.ObjectID) ([]model.Child, error)
}

// ClassroomStore provides classroom existence checks for the
// denormalized classroom key.
type ClassroomStore interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// EventStore provides event persistence including the event side of the
// event-feedback relationship.
type EventStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
	ListByClassroom(ctx context.Context, classroom string) ([]model.Event, error)
	AddOptOut(ctx context.Context, eventID, childID primitive.ObjectID) error
	RemoveOptOut(ctx context.Context, eventID, childID primitive.ObjectID) error
}
