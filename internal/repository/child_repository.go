package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kidnest/kidnest-backend/internal/model"
)

// ChildRepository handles child data access.
type ChildRepository struct {
	collection *mongo.Collection
}

// NewChildRepository creates a new ChildRepository.
func NewChildRepository(db *mongo.Database) *ChildRepository {
	return &ChildRepository{collection: db.Collection("children")}
}

// GetByID retrieves a child by its document id.
func (r *ChildRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Child, error) {
	var child model.Child
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&child)
	if err != nil {
		return nil, translate(err)
	}
	return &child, nil
}

// AddEventFeedback adds an event reference to the child's feedback set.
// $addToSet makes the operation idempotent: re-adding an existing
// reference leaves the document unchanged.
func (r *ChildRepository) AddEventFeedback(ctx context.Context, childID, eventID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": childID},
		bson.M{"$addToSet": bson.M{"event_feedback": eventID}},
	)
	if err != nil {
		return fmt.Errorf("add event feedback: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveEventFeedback removes an event reference from the child's
// feedback set. Removing an absent reference is a no-op.
func (r *ChildRepository) RemoveEventFeedback(ctx context.Context, childID, eventID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": childID},
		bson.M{"$pull": bson.M{"event_feedback": eventID}},
	)
	if err != nil {
		return fmt.Errorf("remove event feedback: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByEventFeedback retrieves all children whose feedback set
// references the given event. Used by the reconciliation pass to find
// child-side entries the event side no longer carries.
func (r *ChildRepository) ListByEventFeedback(ctx context.Context, eventID primitive.ObjectID) ([]model.Child, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"event_feedback": eventID})
	if err != nil {
		return nil, fmt.Errorf("find children by feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var children []model.Child
	if err := cursor.All(ctx, &children); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	return children, nil
}
