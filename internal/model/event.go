package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType classifies a scheduled event.
type EventType string

const (
	EventTypeClosed  EventType = "Classroom Closed"
	EventTypeLimited EventType = "Limited Attendance"
)

// Event represents an event document: a closure or attendance-limited
// day scoped to one classroom. ChildrenStayingHome is the opt-out set
// and the read-side source of truth for feedback state.
type Event struct {
	ID                  primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Classroom           string               `json:"classroom" bson:"classroom"`
	Date                time.Time            `json:"date" bson:"date"`
	EventType           EventType            `json:"event_type" bson:"event_type"`
	MaxChildrenAllowed  int                  `json:"max_children_allowed" bson:"max_children_allowed"`
	ChildrenStayingHome []primitive.ObjectID `json:"children_staying_home" bson:"children_staying_home"`
}

// EventView is the external projection of an event. Internal references
// are rendered as opaque hex ids.
type EventView struct {
	ID                  string    `json:"id"`
	Classroom           string    `json:"classroom"`
	Date                time.Time `json:"date"`
	EventType           EventType `json:"event_type"`
	MaxChildrenAllowed  int       `json:"max_children_allowed"`
	ChildrenStayingHome []string  `json:"children_staying_home"`
}

// View renders the external projection.
func (e *Event) View() EventView {
	optOuts := make([]string, 0, len(e.ChildrenStayingHome))
	for _, id := range e.ChildrenStayingHome {
		optOuts = append(optOuts, id.Hex())
	}
	return EventView{
		ID:                  e.ID.Hex(),
		Classroom:           e.Classroom,
		Date:                e.Date,
		EventType:           e.EventType,
		MaxChildrenAllowed:  e.MaxChildrenAllowed,
		ChildrenStayingHome: optOuts,
	}
}

// RosterEntry is one classroom a principal is entitled to see. Child is
// set for parent rosters (one entry per child, even when two children
// share a classroom) and nil for teacher rosters.
type RosterEntry struct {
	Classroom string        `json:"classroom"`
	Child     *ChildSummary `json:"child,omitempty"`
}

// ClassroomEvents is one aggregated visibility entry: the events of one
// roster entry's classroom, seen through that entry. ClassroomKnown is
// false when the denormalized classroom key has no classroom document.
type ClassroomEvents struct {
	Classroom      string        `json:"classroom"`
	ClassroomKnown bool          `json:"classroom_known"`
	Child          *ChildSummary `json:"child,omitempty"`
	Events         []EventView   `json:"events"`
}

// FeedbackRequest is the payload for posting or withdrawing event
// feedback for a child.
type FeedbackRequest struct {
	ChildID string `json:"child_id" binding:"required,objectid"`
}

// FeedbackStatus reports the opt-out state of one (event, child) pair.
// Inconsistent is set when the two sides of the relationship disagree.
type FeedbackStatus struct {
	EventID      string `json:"event_id"`
	ChildID      string `json:"child_id"`
	OptedOut     bool   `json:"opted_out"`
	Inconsistent bool   `json:"inconsistent,omitempty"`
}

// ReconcileResult reports what an event reconciliation pass changed.
type ReconcileResult struct {
	EventID          string   `json:"event_id"`
	AddedToChild     []string `json:"added_to_child_side"`
	RemovedFromChild []string `json:"removed_from_child_side"`
}
