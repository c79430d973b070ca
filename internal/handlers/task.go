package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskforge/api/internal/dto"
	apierrors "github.com/taskforge/api/internal/errors"
	"github.com/taskforge/api/internal/middleware"
	"github.com/taskforge/api/internal/services"
)

// TaskHandler coordinates task and comment HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	logger      *zap.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// Create creates a task in a project. The :id param is the project,
// already checked by RequireProjectAccess.
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		AssignedTo  *uuid.UUID `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		CreatedBy:   userID,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidTaskTitle) {
			apierrors.BadRequest(c, "Task title is required")
			return
		}
		h.logger.Error("failed to create task", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListByProject returns a project's tasks in board order.
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	tasks, err := h.taskService.ListTasks(projectID)
	if err != nil {
		h.logger.Error("failed to list tasks", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// Get returns a single task.
func (h *TaskHandler) Get(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		h.logger.Error("failed to fetch task", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Update applies a merge patch to a task.
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		AssignedTo  *uuid.UUID `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
		Position    *int       `json:"position"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Position:    req.Position,
	})
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		h.logger.Error("failed to update task", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Delete removes a task. Any organization member may delete tasks.
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		h.logger.Error("failed to delete task", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateComment appends a comment to a task.
func (h *TaskHandler) CreateComment(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Comment content is required")
		return
	}

	comment, err := h.taskService.AddComment(taskID, userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCommentContent) {
			apierrors.BadRequest(c, "Comment content is required")
			return
		}
		h.logger.Error("failed to create comment", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns a task's comments, oldest first.
func (h *TaskHandler) ListComments(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	comments, err := h.taskService.ListComments(taskID)
	if err != nil {
		h.logger.Error("failed to list comments", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}
