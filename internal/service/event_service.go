package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kidnest/kidnest-backend/internal/model"
)

// EventService aggregates event visibility per roster entry.
type EventService struct {
	roster     *RosterService
	events     EventStore
	classrooms ClassroomStore
	log        zerolog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(roster *RosterService, events EventStore, classrooms ClassroomStore, log zerolog.Logger) *EventService {
	return &EventService{roster: roster, events: events, classrooms: classrooms, log: log}
}

// classroomEvents caches one classroom's fetch within a single call.
// Nothing is retained across requests.
type classroomEvents struct {
	known  bool
	events []model.EventView
}

// VisibleEvents returns one entry per roster pair, in roster order, each
// carrying the projected events of that pair's classroom. A parent with
// two children in the same classroom gets two entries: each represents
// that child's visibility into the classroom, not the classroom itself.
// Entries within a pair keep the store's natural order. An account with
// no relevant classrooms gets an empty list, not an error.
func (s *EventService) VisibleEvents(ctx context.Context, user *model.User) ([]model.ClassroomEvents, error) {
	entries, err := s.roster.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	fetched := make(map[string]classroomEvents)
	result := make([]model.ClassroomEvents, 0, len(entries))

	for _, entry := range entries {
		cached, ok := fetched[entry.Classroom]
		if !ok {
			cached, err = s.fetchClassroom(ctx, entry.Classroom)
			if err != nil {
				return nil, err
			}
			fetched[entry.Classroom] = cached
		}

		result = append(result, model.ClassroomEvents{
			Classroom:      entry.Classroom,
			ClassroomKnown: cached.known,
			Child:          entry.Child,
			Events:         cached.events,
		})
	}
	return result, nil
}

func (s *EventService) fetchClassroom(ctx context.Context, classroom string) (classroomEvents, error) {
	known, err := s.classrooms.ExistsByName(ctx, classroom)
	if err != nil {
		return classroomEvents{}, err
	}
	if !known {
		// The classroom key is denormalized with no referential
		// integrity; surface the dangling key instead of dropping the
		// entry.
		s.log.Warn().
			Str("classroom", classroom).
			Msg("Classroom key has no classroom document")
	}

	events, err := s.events.ListByClassroom(ctx, classroom)
	if err != nil {
		return classroomEvents{}, err
	}

	views := make([]model.EventView, 0, len(events))
	for i := range events {
		views = append(views, events[i].View())
	}
	return classroomEvents{known: known, events: views}, nil
}
