package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/avoronov/taskgo/internal/models"
	"github.com/avoronov/taskgo/internal/storage"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  storage.TaskStore
}

func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskStore,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	status := params.Status
	if status == "" {
		status = models.StatusNotStarted
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	now := time.Now()
	task := models.Task{
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	err = s.tasks.CreateTask(ctx, &task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return &task, nil
}

func (s *taskServiceImpl) TasksByUserID(ctx context.Context, userID string) ([]models.Task, error) {
	tasks, err := s.tasks.TasksByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by user id")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if params.Status != "" && !models.ValidStatus(params.Status) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.tasks.TaskByID(ctx, params.ID, params.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			s.logger.Error().
				Str("task_id", params.ID).
				Str("user_id", params.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to select task")
		return nil, err
	}

	// Empty fields keep their previous values, so a task cannot be
	// cleared back to an empty name or description via update.
	if params.Name != "" {
		task.Name = params.Name
	}
	if params.Description != "" {
		task.Description = params.Description
	}
	if params.Status != "" {
		task.Status = params.Status
	}
	task.UpdatedAt = time.Now()

	err = s.tasks.SaveTask(ctx, task)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id, userID string) error {
	err := s.tasks.DeleteTask(ctx, id, userID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			s.logger.Error().
				Str("task_id", id).
				Str("user_id", userID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("task_id", id).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}
