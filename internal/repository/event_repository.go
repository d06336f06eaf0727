package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kidnest/kidnest-backend/internal/model"
)

// EventRepository handles event data access. Events are created by an
// administrative process outside this service; here they are read-only
// except for the opt-out set.
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{collection: db.Collection("events")}
}

// GetByID retrieves an event by its document id.
func (r *EventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	var event model.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// ListByClassroom retrieves all events scoped to a classroom key, in the
// store's natural order, projected to the externally relevant fields.
func (r *EventRepository) ListByClassroom(ctx context.Context, classroom string) ([]model.Event, error) {
	projection := options.Find().SetProjection(bson.M{
		"classroom":             1,
		"date":                  1,
		"event_type":            1,
		"max_children_allowed":  1,
		"children_staying_home": 1,
	})

	cursor, err := r.collection.Find(ctx, bson.M{"classroom": classroom}, projection)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []model.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// AddOptOut adds a child reference to the event's opt-out set.
// $addToSet makes the operation idempotent.
func (r *EventRepository) AddOptOut(ctx context.Context, eventID, childID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{"$addToSet": bson.M{"children_staying_home": childID}},
	)
	if err != nil {
		return fmt.Errorf("add opt-out: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveOptOut removes a child reference from the event's opt-out set.
// Removing an absent reference is a no-op.
func (r *EventRepository) RemoveOptOut(ctx context.Context, eventID, childID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{"$pull": bson.M{"children_staying_home": childID}},
	)
	if err != nil {
		return fmt.Errorf("remove opt-out: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
