package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
	"github.com/kidnest/kidnest-backend/internal/repository"
)

// FeedbackService manages the attendance opt-out relationship between
// events and children. The relationship is stored twice — the event's
// children_staying_home set and the child's event_feedback set — and the
// two documents cannot be updated atomically together. Every mutation
// therefore writes both sides unconditionally with atomic set
// operations, event side first: the event side is the read-side source
// of truth, so a crash between the writes leaves only the child side
// stale, which reads tolerate and ReconcileEvent can heal.
type FeedbackService struct {
	events   EventStore
	children ChildStore
	log      zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(events EventStore, children ChildStore, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{events: events, children: children, log: log}
}

// resolvePair loads both documents of a feedback pair, mapping a miss on
// either side to ErrNotFound.
func (s *FeedbackService) resolvePair(ctx context.Context, eventID, childID string) (*model.Event, *model.Child, error) {
	eid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	cid, err := primitive.ObjectIDFromHex(childID)
	if err != nil {
		return nil, nil, ErrNotFound
	}

	event, err := s.events.GetByID(ctx, eid)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	child, err := s.children.GetByID(ctx, cid)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	return event, child, nil
}

// PostFeedback records a child's opt-out for an event. Posting feedback
// that is already recorded is a no-op success, never a duplicate insert.
func (s *FeedbackService) PostFeedback(ctx context.Context, eventID, childID string) (*model.FeedbackStatus, error) {
	event, child, err := s.resolvePair(ctx, eventID, childID)
	if err != nil {
		return nil, err
	}

	// Both set-adds run even when the pair is already opted out: the
	// writes are idempotent, the repeat call is a no-op success, and a
	// previously failed child-side write gets another chance. Mutations
	// are authoritative for both sides, never mirrored from one.
	if err := s.events.AddOptOut(ctx, event.ID, child.ID); err != nil {
		return nil, mapNotFound(err)
	}
	if err := s.children.AddEventFeedback(ctx, child.ID, event.ID); err != nil {
		// The event side is already committed; the pair is asymmetric
		// until a retry or reconciliation pass heals it.
		s.log.Error().Err(err).
			Str("event_id", event.ID.Hex()).
			Str("child_id", child.ID.Hex()).
			Msg("Child-side feedback write failed after event-side commit")
		return nil, fmt.Errorf("record feedback: %w", err)
	}

	return &model.FeedbackStatus{
		EventID:  event.ID.Hex(),
		ChildID:  child.ID.Hex(),
		OptedOut: true,
	}, nil
}

// GetFeedback reports whether the pair is currently opted out. The event
// side is the source of truth; disagreement between the two sides is
// reported on the status, not repaired.
func (s *FeedbackService) GetFeedback(ctx context.Context, eventID, childID string) (*model.FeedbackStatus, error) {
	event, child, err := s.resolvePair(ctx, eventID, childID)
	if err != nil {
		return nil, err
	}

	eventSide := containsID(event.ChildrenStayingHome, child.ID)
	childSide := containsID(child.EventFeedback, event.ID)

	if eventSide != childSide {
		s.log.Warn().
			Str("event_id", event.ID.Hex()).
			Str("child_id", child.ID.Hex()).
			Bool("event_side", eventSide).
			Bool("child_side", childSide).
			Msg("Feedback records are asymmetric")
	}

	return &model.FeedbackStatus{
		EventID:      event.ID.Hex(),
		ChildID:      child.ID.Hex(),
		OptedOut:     eventSide,
		Inconsistent: eventSide != childSide,
	}, nil
}

// WithdrawFeedback removes a child's opt-out for an event. Withdrawing a
// pair that is not opted out fails with ErrInvalidState. Both sides are
// written unconditionally; $pull of an absent reference is a no-op, so a
// stale child-side entry is cleared along the way.
func (s *FeedbackService) WithdrawFeedback(ctx context.Context, eventID, childID string) (*model.FeedbackStatus, error) {
	event, child, err := s.resolvePair(ctx, eventID, childID)
	if err != nil {
		return nil, err
	}

	if !containsID(event.ChildrenStayingHome, child.ID) {
		return nil, ErrInvalidState
	}

	if err := s.events.RemoveOptOut(ctx, event.ID, child.ID); err != nil {
		return nil, mapNotFound(err)
	}
	if err := s.children.RemoveEventFeedback(ctx, child.ID, event.ID); err != nil {
		s.log.Error().Err(err).
			Str("event_id", event.ID.Hex()).
			Str("child_id", child.ID.Hex()).
			Msg("Child-side feedback removal failed after event-side commit")
		return nil, fmt.Errorf("withdraw feedback: %w", err)
	}

	return &model.FeedbackStatus{
		EventID:  event.ID.Hex(),
		ChildID:  child.ID.Hex(),
		OptedOut: false,
	}, nil
}

// ReconcileEvent rewrites the child side of every pair involving the
// event to match the event's opt-out set. The event side is
// authoritative: stale child-side references are pulled, missing ones
// are added. Child documents that no longer exist are skipped.
func (s *FeedbackService) ReconcileEvent(ctx context.Context, eventID string) (*model.ReconcileResult, error) {
	eid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, ErrNotFound
	}

	event, err := s.events.GetByID(ctx, eid)
	if err != nil {
		return nil, mapNotFound(err)
	}

	result := &model.ReconcileResult{
		EventID:          event.ID.Hex(),
		AddedToChild:     []string{},
		RemovedFromChild: []string{},
	}

	optedOut := make(map[primitive.ObjectID]bool, len(event.ChildrenStayingHome))
	for _, id := range event.ChildrenStayingHome {
		optedOut[id] = true
	}

	// Pull child-side references the event no longer carries.
	strays, err := s.children.ListByEventFeedback(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	for i := range strays {
		child := &strays[i]
		if optedOut[child.ID] {
			continue
		}
		if err := s.children.RemoveEventFeedback(ctx, child.ID, event.ID); err != nil {
			return nil, err
		}
		result.RemovedFromChild = append(result.RemovedFromChild, child.ID.Hex())
	}

	// Add child-side references the event carries but the child lacks.
	for _, childID := range event.ChildrenStayingHome {
		child, err := s.children.GetByID(ctx, childID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.log.Warn().
					Str("event_id", event.ID.Hex()).
					Str("child_id", childID.Hex()).
					Msg("Opt-out references a child that no longer exists")
				continue
			}
			return nil, err
		}
		if containsID(child.EventFeedback, event.ID) {
			continue
		}
		if err := s.children.AddEventFeedback(ctx, child.ID, event.ID); err != nil {
			return nil, err
		}
		result.AddedToChild = append(result.AddedToChild, child.ID.Hex())
	}

	if len(result.AddedToChild) > 0 || len(result.RemovedFromChild) > 0 {
		s.log.Info().
			Str("event_id", event.ID.Hex()).
			Int("added", len(result.AddedToChild)).
			Int("removed", len(result.RemovedFromChild)).
			Msg("Reconciled feedback records")
	}
	return result, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
