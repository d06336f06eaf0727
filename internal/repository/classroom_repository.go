package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kidnest/kidnest-backend/internal/model"
)

// ClassroomRepository handles classroom data access.
type ClassroomRepository struct {
	collection *mongo.Collection
}

// NewClassroomRepository creates a new ClassroomRepository.
func NewClassroomRepository(db *mongo.Database) *ClassroomRepository {
	return &ClassroomRepository{collection: db.Collection("classrooms")}
}

// GetByName retrieves a classroom by its name key.
func (r *ClassroomRepository) GetByName(ctx context.Context, name string) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&classroom)
	if err != nil {
		return nil, translate(err)
	}
	return &classroom, nil
}

// ExistsByName reports whether a classroom document exists for the
// given name key. Used to defend against dangling denormalized keys.
func (r *ClassroomRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("count classrooms: %w", err)
	}
	return n > 0, nil
}
