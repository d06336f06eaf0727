package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kidnest/kidnest-backend/internal/model"
	"github.com/kidnest/kidnest-backend/internal/repository"
)

// RosterService resolves the ordered list of (classroom, child) pairs a
// principal is entitled to see: one pair per child for parents, one pair
// per assigned classroom for teachers.
type RosterService struct {
	parents  ParentStore
	teachers TeacherStore
	children ChildStore
	log      zerolog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(parents ParentStore, teachers TeacherStore, children ChildStore, log zerolog.Logger) *RosterService {
	return &RosterService{parents: parents, teachers: teachers, children: children, log: log}
}

// Resolve produces the roster for an already-resolved account.
//
// Parent and admin accounts resolve through their parent profile: one
// entry per referenced child in profile order, never collapsing two
// children that share a classroom. A child reference that no longer
// resolves is skipped so one broken reference cannot deny visibility
// into the remaining children. Teachers resolve through their assigned
// classrooms with no child descriptor. Any other role is forbidden.
func (s *RosterService) Resolve(ctx context.Context, user *model.User) ([]model.RosterEntry, error) {
	switch user.Role {
	case model.RoleParent, model.RoleAdmin:
		return s.resolveParent(ctx, user)
	case model.RoleTeacher:
		return s.resolveTeacher(ctx, user)
	default:
		return nil, ErrForbidden
	}
}

func (s *RosterService) resolveParent(ctx context.Context, user *model.User) ([]model.RosterEntry, error) {
	profile, err := s.parents.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	entries := make([]model.RosterEntry, 0, len(profile.Children))
	for _, childID := range profile.Children {
		child, err := s.children.GetByID(ctx, childID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.log.Warn().
					Str("parent_id", profile.ID.Hex()).
					Str("child_id", childID.Hex()).
					Msg("Skipping dangling child reference in parent profile")
				continue
			}
			return nil, err
		}

		summary := child.Summary()
		entries = append(entries, model.RosterEntry{
			Classroom: child.Classroom,
			Child:     &summary,
		})
	}
	return entries, nil
}

func (s *RosterService) resolveTeacher(ctx context.Context, user *model.User) ([]model.RosterEntry, error) {
	profile, err := s.teachers.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	entries := make([]model.RosterEntry, 0, len(profile.AssignedClassrooms))
	for _, classroom := range profile.AssignedClassrooms {
		entries = append(entries, model.RosterEntry{Classroom: classroom})
	}
	return entries, nil
}
