package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
)

func newTestEvent(classroom string) *model.Event {
	return &model.Event{
		ID:                  primitive.NewObjectID(),
		Classroom:           classroom,
		EventType:           model.EventTypeClosed,
		ChildrenStayingHome: []primitive.ObjectID{},
	}
}

func newTestChild(classroom string) *model.Child {
	return &model.Child{
		ID:            primitive.NewObjectID(),
		FirstName:     "Noah",
		LastName:      "Jensen",
		Classroom:     classroom,
		EventFeedback: []primitive.ObjectID{},
	}
}

func TestPostFeedback_RecordsBothSides(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	events := newFakeEventStore(event)
	children := newFakeChildStore(child)
	svc := NewFeedbackService(events, children, zerolog.Nop())

	status, err := svc.PostFeedback(context.Background(), event.ID.Hex(), child.ID.Hex())
	if err != nil {
		t.Fatalf("PostFeedback: %v", err)
	}
	if !status.OptedOut {
		t.Error("expected status to report opted out")
	}
	if !containsID(event.ChildrenStayingHome, child.ID) {
		t.Error("event side missing the opt-out")
	}
	if !containsID(child.EventFeedback, event.ID) {
		t.Error("child side missing the feedback reference")
	}
}

func TestPostFeedback_IsIdempotent(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	events := newFakeEventStore(event)
	children := newFakeChildStore(child)
	svc := NewFeedbackService(events, children, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := svc.PostFeedback(context.Background(), event.ID.Hex(), child.ID.Hex()); err != nil {
			t.Fatalf("PostFeedback attempt %d: %v", i+1, err)
		}
	}

	if len(event.ChildrenStayingHome) != 1 {
		t.Errorf("event side has %d entries, want 1", len(event.ChildrenStayingHome))
	}
	if len(child.EventFeedback) != 1 {
		t.Errorf("child side has %d entries, want 1", len(child.EventFeedback))
	}
}

func TestPostFeedback_RetryHealsChildSide(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	events := newFakeEventStore(event)
	children := newFakeChildStore(child)
	svc := NewFeedbackService(events, children, zerolog.Nop())

	children.AddEventFeedbackError = errors.New("connection reset")
	if _, err := svc.PostFeedback(context.Background(), event.ID.Hex(), child.ID.Hex()); err == nil {
		t.Fatal("expected error when child-side write fails")
	}

	// The event side committed before the failure.
	if !containsID(event.ChildrenStayingHome, child.ID) {
		t.Fatal("event side should be committed despite the child-side failure")
	}
	if containsID(child.EventFeedback, event.ID) {
		t.Fatal("child side should not be committed")
	}

	// The asymmetric window is visible to reads.
	status, err := svc.GetFeedback(context.Background(), event.ID.Hex(), child.ID.Hex())
	if err != nil {
		t.Fatalf("GetFeedback: %v", err)
	}
	if !status.OptedOut || !status.Inconsistent {
		t.Errorf("got OptedOut=%v Inconsistent=%v, want true/true", status.OptedOut, status.Inconsistent)
	}

	// A retry writes the missing child side.
	children.AddEventFeedbackError = nil
	if _, err := svc.PostFeedback(context.Background(), event.ID.Hex(), child.ID.Hex()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !containsID(child.EventFeedback, event.ID) {
		t.Error("retry did not heal the child side")
	}
}

func TestPostFeedback_UnknownReferences(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	svc := NewFeedbackService(newFakeEventStore(event), newFakeChildStore(child), zerolog.Nop())

	tests := []struct {
		name    string
		eventID string
		childID string
	}{
		{"malformed_event_id", "not-a-hex-id", child.ID.Hex()},
		{"malformed_child_id", event.ID.Hex(), "not-a-hex-id"},
		{"unknown_event", primitive.NewObjectID().Hex(), child.ID.Hex()},
		{"unknown_child", event.ID.Hex(), primitive.NewObjectID().Hex()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.PostFeedback(context.Background(), tt.eventID, tt.childID); !errors.Is(err, ErrNotFound) {
				t.Errorf("got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestGetFeedback_ReportsAsymmetryWithoutRepair(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	// Event side only: the shape left by a crash between the two writes.
	event.ChildrenStayingHome = []primitive.ObjectID{child.ID}
	svc := NewFeedbackService(newFakeEventStore(event), newFakeChildStore(child), zerolog.Nop())

	status, err := svc.GetFeedback(context.Background(), event.ID.Hex(), child.ID.Hex())
	if err != nil {
		t.Fatalf("GetFeedback: %v", err)
	}
	if !status.OptedOut {
		t.Error("event side is authoritative; expected opted out")
	}
	if !status.Inconsistent {
		t.Error("expected the asymmetry to be reported")
	}
	if len(child.EventFeedback) != 0 {
		t.Error("read must not repair the child side")
	}
}

func TestGetFeedback_ChildSideOnlyIsNotOptedOut(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	child.EventFeedback = []primitive.ObjectID{event.ID}
	svc := NewFeedbackService(newFakeEventStore(event), newFakeChildStore(child), zerolog.Nop())

	status, err := svc.GetFeedback(context.Background(), event.ID.Hex(), child.ID.Hex())
	if err != nil {
		t.Fatalf("GetFeedback: %v", err)
	}
	if status.OptedOut {
		t.Error("a stale child-side entry must not read as opted out")
	}
	if !status.Inconsistent {
		t.Error("expected the asymmetry to be reported")
	}
}

func TestWithdrawFeedback_RoundTrip(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	events := newFakeEventStore(event)
	children := newFakeChildStore(child)
	svc := NewFeedbackService(events, children, zerolog.Nop())

	ctx := context.Background()
	if _, err := svc.PostFeedback(ctx, event.ID.Hex(), child.ID.Hex()); err != nil {
		t.Fatalf("PostFeedback: %v", err)
	}
	status, err := svc.WithdrawFeedback(ctx, event.ID.Hex(), child.ID.Hex())
	if err != nil {
		t.Fatalf("WithdrawFeedback: %v", err)
	}
	if status.OptedOut {
		t.Error("expected status to report attending after withdrawal")
	}
	if len(event.ChildrenStayingHome) != 0 || len(child.EventFeedback) != 0 {
		t.Error("withdrawal must clear both sides")
	}

	after, err := svc.GetFeedback(ctx, event.ID.Hex(), child.ID.Hex())
	if err != nil {
		t.Fatalf("GetFeedback: %v", err)
	}
	if after.OptedOut || after.Inconsistent {
		t.Errorf("got OptedOut=%v Inconsistent=%v after round trip, want false/false", after.OptedOut, after.Inconsistent)
	}
}

func TestWithdrawFeedback_WhenAttendingFails(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	svc := NewFeedbackService(newFakeEventStore(event), newFakeChildStore(child), zerolog.Nop())

	if _, err := svc.WithdrawFeedback(context.Background(), event.ID.Hex(), child.ID.Hex()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState", err)
	}
}

func TestWithdrawFeedback_ClearsStaleChildSide(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	staleEvent := primitive.NewObjectID()
	event.ChildrenStayingHome = []primitive.ObjectID{child.ID}
	child.EventFeedback = []primitive.ObjectID{staleEvent, event.ID}
	svc := NewFeedbackService(newFakeEventStore(event), newFakeChildStore(child), zerolog.Nop())

	if _, err := svc.WithdrawFeedback(context.Background(), event.ID.Hex(), child.ID.Hex()); err != nil {
		t.Fatalf("WithdrawFeedback: %v", err)
	}
	if !containsID(child.EventFeedback, staleEvent) {
		t.Error("withdrawal must only remove its own reference")
	}
	if containsID(child.EventFeedback, event.ID) {
		t.Error("withdrawal left the target reference behind")
	}
}

func TestReconcileEvent_EventSideWins(t *testing.T) {
	event := newTestEvent("Group A")
	optedOut := newTestChild("Group A")
	stale := newTestChild("Group A")
	event.ChildrenStayingHome = []primitive.ObjectID{optedOut.ID}
	stale.EventFeedback = []primitive.ObjectID{event.ID}
	svc := NewFeedbackService(newFakeEventStore(event), newFakeChildStore(optedOut, stale), zerolog.Nop())

	result, err := svc.ReconcileEvent(context.Background(), event.ID.Hex())
	if err != nil {
		t.Fatalf("ReconcileEvent: %v", err)
	}

	if len(result.AddedToChild) != 1 || result.AddedToChild[0] != optedOut.ID.Hex() {
		t.Errorf("AddedToChild = %v, want [%s]", result.AddedToChild, optedOut.ID.Hex())
	}
	if len(result.RemovedFromChild) != 1 || result.RemovedFromChild[0] != stale.ID.Hex() {
		t.Errorf("RemovedFromChild = %v, want [%s]", result.RemovedFromChild, stale.ID.Hex())
	}
	if !containsID(optedOut.EventFeedback, event.ID) {
		t.Error("missing child-side reference was not added")
	}
	if containsID(stale.EventFeedback, event.ID) {
		t.Error("stray child-side reference was not removed")
	}
}

func TestReconcileEvent_ConsistentPairsUntouched(t *testing.T) {
	event := newTestEvent("Group A")
	child := newTestChild("Group A")
	event.ChildrenStayingHome = []primitive.ObjectID{child.ID}
	child.EventFeedback = []primitive.ObjectID{event.ID}
	svc := NewFeedbackService(newFakeEventStore(event), newFakeChildStore(child), zerolog.Nop())

	result, err := svc.ReconcileEvent(context.Background(), event.ID.Hex())
	if err != nil {
		t.Fatalf("ReconcileEvent: %v", err)
	}
	if len(result.AddedToChild) != 0 || len(result.RemovedFromChild) != 0 {
		t.Errorf("consistent pair was rewritten: %+v", result)
	}
}

func TestReconcileEvent_SkipsDeletedChildren(t *testing.T) {
	event := newTestEvent("Group A")
	event.ChildrenStayingHome = []primitive.ObjectID{primitive.NewObjectID()}
	svc := NewFeedbackService(newFakeEventStore(event), newFakeChildStore(), zerolog.Nop())

	result, err := svc.ReconcileEvent(context.Background(), event.ID.Hex())
	if err != nil {
		t.Fatalf("ReconcileEvent: %v", err)
	}
	if len(result.AddedToChild) != 0 {
		t.Errorf("deleted child produced a child-side write: %+v", result)
	}
}
