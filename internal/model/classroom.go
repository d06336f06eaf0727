package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classroom represents a classroom document. Children, teachers and
// events reference classrooms by name, not by id; the name is the shared
// denormalized key.
type Classroom struct {
	ID       primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name     string               `json:"name" bson:"name"`
	Teacher  primitive.ObjectID   `json:"teacher" bson:"teacher"`
	Students []primitive.ObjectID `json:"students" bson:"students"`
}
