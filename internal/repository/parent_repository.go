package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kidnest/kidnest-backend/internal/model"
)

// ParentRepository handles parent profile data access.
type ParentRepository struct {
	collection *mongo.Collection
}

// NewParentRepository creates a new ParentRepository.
func NewParentRepository(db *mongo.Database) *ParentRepository {
	return &ParentRepository{collection: db.Collection("parents")}
}

// GetByUserID retrieves the parent profile owned by an account.
func (r *ParentRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*model.Parent, error) {
	var parent model.Parent
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&parent)
	if err != nil {
		return nil, translate(err)
	}
	return &parent, nil
}
