package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/taskgo/internal/models"
	"github.com/avoronov/taskgo/internal/services"
)

type taskResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Desc      string    `json:"desc"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:        task.ID,
		Name:      task.Name,
		Desc:      task.Description,
		Type:      task.Status,
		CreatedAt: task.CreatedAt,
	}
}

type createTaskRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Desc string `json:"desc"`
	Type string `json:"type"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		h.logger.Error().Msg("no identity found in context")
		abort(c, newUnauthorizedError("Not authorized, no token."))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("Task name is required."))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:      identity.UserID,
		Name:        req.Name,
		Description: req.Desc,
		Status:      req.Type,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		switch {
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, newBadRequestError("Invalid task type."))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		h.logger.Error().Msg("no identity found in context")
		abort(c, newUnauthorizedError("Not authorized, no token."))
		return
	}

	tasks, err := h.tasks.TasksByUserID(c, identity.UserID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, response)
}

type updateTaskRequest struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
	Type string `json:"type"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		h.logger.Error().Msg("no identity found in context")
		abort(c, newUnauthorizedError("Not authorized, no token."))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("Task id is required."))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("Invalid request body."))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          taskID,
		UserID:      identity.UserID,
		Name:        req.Name,
		Description: req.Desc,
		Status:      req.Type,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			// Owner mismatch is indistinguishable from absence.
			abort(c, newNotFoundError("Task not found or unauthorized."))
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, newBadRequestError("Invalid task type."))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		h.logger.Error().Msg("no identity found in context")
		abort(c, newUnauthorizedError("Not authorized, no token."))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("Task id is required."))
		return
	}

	err := h.tasks.DeleteTask(c, taskID, identity.UserID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError("Task not found."))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully."})
}
