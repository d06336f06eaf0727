package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Parent represents a parent profile document, owned 1:1 by a user
// account with role parent (or admin).
type Parent struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID   `json:"user_id" bson:"user_id"`
	RelationToChild string               `json:"relation_to_child" bson:"relation_to_child"`
	Children        []primitive.ObjectID `json:"children" bson:"children"`
}
