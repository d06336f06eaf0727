package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kidnest/kidnest-backend/internal/model"
	"github.com/kidnest/kidnest-backend/internal/repository"
)

// In-memory store fakes. Each method has a matching error-injection
// field; when set, the method returns that error without touching state.

type fakeUserStore struct {
	users map[primitive.ObjectID]*model.User

	GetByIDError error
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[primitive.ObjectID]*model.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if s.GetByIDError != nil {
		return nil, s.GetByIDError
	}
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) SetRoleByEmail(_ context.Context, email string, role model.Role) error {
	for _, user := range s.users {
		if user.Email == email {
			user.Role = role
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeUserStore) SetFCMToken(_ context.Context, id primitive.ObjectID, token string) error {
	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.FCMToken = token
	return nil
}

type fakeParentStore struct {
	parents map[primitive.ObjectID]*model.Parent

	GetByUserIDError error
}

func newFakeParentStore(parents ...*model.Parent) *fakeParentStore {
	s := &fakeParentStore{parents: make(map[primitive.ObjectID]*model.Parent)}
	for _, p := range parents {
		s.parents[p.UserID] = p
	}
	return s
}

func (s *fakeParentStore) GetByUserID(_ context.Context, userID primitive.ObjectID) (*model.Parent, error) {
	if s.GetByUserIDError != nil {
		return nil, s.GetByUserIDError
	}
	parent, ok := s.parents[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return parent, nil
}

type fakeTeacherStore struct {
	teachers map[primitive.ObjectID]*model.Teacher

	GetByUserIDError error
}

func newFakeTeacherStore(teachers ...*model.Teacher) *fakeTeacherStore {
	s := &fakeTeacherStore{teachers: make(map[primitive.ObjectID]*model.Teacher)}
	for _, t := range teachers {
		s.teachers[t.UserID] = t
	}
	return s
}

func (s *fakeTeacherStore) GetByUserID(_ context.Context, userID primitive.ObjectID) (*model.Teacher, error) {
	if s.GetByUserIDError != nil {
		return nil, s.GetByUserIDError
	}
	teacher, ok := s.teachers[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return teacher, nil
}

type fakeChildStore struct {
	children map[primitive.ObjectID]*model.Child

	GetByIDError             error
	AddEventFeedbackError    error
	RemoveEventFeedbackError error
	ListByEventFeedbackError error
}

func newFakeChildStore(children ...*model.Child) *fakeChildStore {
	s := &fakeChildStore{children: make(map[primitive.ObjectID]*model.Child)}
	for _, c := range children {
		s.children[c.ID] = c
	}
	return s
}

func (s *fakeChildStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Child, error) {
	if s.GetByIDError != nil {
		return nil, s.GetByIDError
	}
	child, ok := s.children[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return child, nil
}

func (s *fakeChildStore) AddEventFeedback(_ context.Context, childID, eventID primitive.ObjectID) error {
	if s.AddEventFeedbackError != nil {
		return s.AddEventFeedbackError
	}
	child, ok := s.children[childID]
	if !ok {
		return repository.ErrNotFound
	}
	if !containsID(child.EventFeedback, eventID) {
		child.EventFeedback = append(child.EventFeedback, eventID)
	}
	return nil
}

func (s *fakeChildStore) RemoveEventFeedback(_ context.Context, childID, eventID primitive.ObjectID) error {
	if s.RemoveEventFeedbackError != nil {
		return s.RemoveEventFeedbackError
	}
	child, ok := s.children[childID]
	if !ok {
		return repository.ErrNotFound
	}
	child.EventFeedback = removeID(child.EventFeedback, eventID)
	return nil
}

func (s *fakeChildStore) ListByEventFeedback(_ context.Context, eventID primitive.ObjectID) ([]model.Child, error) {
	if s.ListByEventFeedbackError != nil {
		return nil, s.ListByEventFeedbackError
	}
	var result []model.Child
	for _, child := range s.children {
		if containsID(child.EventFeedback, eventID) {
			result = append(result, *child)
		}
	}
	return result, nil
}

type fakeClassroomStore struct {
	names map[string]bool

	ExistsByNameError error
}

func newFakeClassroomStore(names ...string) *fakeClassroomStore {
	s := &fakeClassroomStore{names: make(map[string]bool)}
	for _, name := range names {
		s.names[name] = true
	}
	return s
}

func (s *fakeClassroomStore) ExistsByName(_ context.Context, name string) (bool, error) {
	if s.ExistsByNameError != nil {
		return false, s.ExistsByNameError
	}
	return s.names[name], nil
}

type fakeEventStore struct {
	events map[primitive.ObjectID]*model.Event

	GetByIDError         error
	ListByClassroomError error
	AddOptOutError       error
	RemoveOptOutError    error
}

func newFakeEventStore(events ...*model.Event) *fakeEventStore {
	s := &fakeEventStore{events: make(map[primitive.ObjectID]*model.Event)}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeEventStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Event, error) {
	if s.GetByIDError != nil {
		return nil, s.GetByIDError
	}
	event, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return event, nil
}

func (s *fakeEventStore) ListByClassroom(_ context.Context, classroom string) ([]model.Event, error) {
	if s.ListByClassroomError != nil {
		return nil, s.ListByClassroomError
	}
	var result []model.Event
	for _, event := range s.events {
		if event.Classroom == classroom {
			result = append(result, *event)
		}
	}
	return result, nil
}

func (s *fakeEventStore) AddOptOut(_ context.Context, eventID, childID primitive.ObjectID) error {
	if s.AddOptOutError != nil {
		return s.AddOptOutError
	}
	event, ok := s.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	if !containsID(event.ChildrenStayingHome, childID) {
		event.ChildrenStayingHome = append(event.ChildrenStayingHome, childID)
	}
	return nil
}

func (s *fakeEventStore) RemoveOptOut(_ context.Context, eventID, childID primitive.ObjectID) error {
	if s.RemoveOptOutError != nil {
		return s.RemoveOptOutError
	}
	event, ok := s.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	event.ChildrenStayingHome = removeID(event.ChildrenStayingHome, childID)
	return nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	result := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			result = append(result, candidate)
		}
	}
	return result
}
