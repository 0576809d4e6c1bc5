package storage

import (
	"context"
	"sync"

	"github.com/avoronov/taskgo/internal/models"
)

// MemoryStore is an in-memory UserStore and TaskStore. It backs tests
// and local experiments that should not need a running Postgres.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by user id
	tasks map[string]models.Task // keyed by task id
	order []string               // task ids in insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]models.User),
		tasks: make(map[string]models.Task),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *MemoryStore) CreateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = *task
	s.order = append(s.order, task.ID)
	return nil
}

func (s *MemoryStore) TasksByUserID(_ context.Context, userID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []models.Task
	for _, id := range s.order {
		if t, ok := s.tasks[id]; ok && t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *MemoryStore) TaskByID(_ context.Context, id, userID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, ErrTaskNotFound
	}
	task := t
	return &task, nil
}

func (s *MemoryStore) SaveTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[task.ID]
	if !ok || t.UserID != task.UserID {
		return ErrTaskNotFound
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryStore) DeleteTask(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}
