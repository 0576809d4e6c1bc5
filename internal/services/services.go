package services

import (
	"context"
	"errors"
	"time"

	"github.com/avoronov/taskgo/internal/models"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so that a caller cannot tell which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserAlreadyExists = errors.New("user already exists")
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

type AuthService interface {
	// Register creates a user with a hashed password and issues a
	// session credential for it.
	//
	// It returns ErrUserAlreadyExists if the email is taken.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates the user by email and password and issues
	// a fresh session credential.
	//
	// It returns ErrInvalidCredentials when the email is unknown or
	// the password does not verify, without distinguishing the two.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
}

type TaskService interface {
	// CreateTask persists a task owned by params.UserID. Description
	// defaults to empty and status to models.StatusNotStarted.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// TasksByUserID returns every task owned by the given user.
	TasksByUserID(ctx context.Context, userID string) ([]models.Task, error)

	// UpdateTask replaces the supplied fields of the task. Empty
	// fields keep their previous values. It returns ErrTaskNotFound
	// if no task with params.ID is owned by params.UserID.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id, userID string) error
}

type UserService interface {
	// ListUsers returns the public fields of every registered user.
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User      models.PublicUser
	Token     string
	ExpiresAt time.Time
}

type CreateTaskParams struct {
	UserID      string
	Name        string
	Description string
	Status      string
}

type UpdateTaskParams struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Status      string
}
