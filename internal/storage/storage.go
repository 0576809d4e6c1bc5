package storage

import (
	"context"
	"errors"

	"github.com/avoronov/taskgo/internal/models"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")
)

// UserStore persists identity records.
type UserStore interface {
	// CreateUser inserts a new user. It returns ErrEmailTaken
	// if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// UserByEmail returns the user with the given email
	// or ErrUserNotFound.
	UserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all registered users.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// TaskStore persists tasks. Every read and write that targets a single
// task takes the owner's user id so that tasks of other users are
// indistinguishable from absent ones.
type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error

	// TasksByUserID returns every task owned by the given user,
	// newest first.
	TasksByUserID(ctx context.Context, userID string) ([]models.Task, error)

	// TaskByID returns the task with the given id owned by the given
	// user or ErrTaskNotFound.
	TaskByID(ctx context.Context, id, userID string) (*models.Task, error)

	// SaveTask writes back the mutable fields of an existing task.
	// It returns ErrTaskNotFound if the task no longer exists for
	// its owner.
	SaveTask(ctx context.Context, task *models.Task) error

	// DeleteTask removes the task with the given id owned by the
	// given user or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id, userID string) error
}
