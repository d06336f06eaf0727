package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Teacher represents a teacher profile document, owned 1:1 by a user
// account with role teacher.
type Teacher struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID             primitive.ObjectID `json:"user_id" bson:"user_id"`
	AssignedClassrooms []string           `json:"assigned_classrooms" bson:"assigned_classrooms"`
	Qualifications     []string           `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
	EmploymentDate     string             `json:"employment_date,omitempty" bson:"employment_date,omitempty"`
}
