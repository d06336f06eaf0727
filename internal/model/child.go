package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicalInfo holds a child's health details.
type MedicalInfo struct {
	Allergies    []string `json:"allergies,omitempty" bson:"allergies,omitempty"`
	Medications  []string `json:"medications,omitempty" bson:"medications,omitempty"`
	SpecialNeeds string   `json:"special_needs,omitempty" bson:"special_needs,omitempty"`
}

// EmergencyContact is a non-parent contact for a child.
type EmergencyContact struct {
	Name        string `json:"name" bson:"name"`
	Relation    string `json:"relation" bson:"relation"`
	PhoneNumber string `json:"phone_number" bson:"phone_number"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
}

// Child represents a child document. A child belongs to exactly one
// classroom at a time; the classroom field is a denormalized string key
// shared with teachers and events. EventFeedback is the inverse of
// Event.ChildrenStayingHome and must stay symmetric with it.
type Child struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	FirstName         string               `json:"first_name" bson:"first_name"`
	LastName          string               `json:"last_name" bson:"last_name"`
	DateOfBirth       string               `json:"date_of_birth" bson:"date_of_birth"`
	Gender            string               `json:"gender" bson:"gender"`
	EnrollmentDate    string               `json:"enrollment_date" bson:"enrollment_date"`
	Classroom         string               `json:"classroom" bson:"classroom"`
	MedicalInfo       MedicalInfo          `json:"medical_info" bson:"medical_info"`
	EmergencyContacts []EmergencyContact   `json:"emergency_contacts,omitempty" bson:"emergency_contacts,omitempty"`
	Parents           []primitive.ObjectID `json:"parents" bson:"parents"`
	Activities        []string             `json:"activities,omitempty" bson:"activities,omitempty"`
	EventFeedback     []primitive.ObjectID `json:"event_feedback" bson:"event_feedback"`
}

// ChildSummary is the external-safe child descriptor used in roster and
// event visibility results.
type ChildSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Summary renders the external descriptor for a child.
func (c *Child) Summary() ChildSummary {
	return ChildSummary{
		ID:        c.ID.Hex(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}
