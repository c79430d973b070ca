package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskforge/api/internal/constants"
	"github.com/taskforge/api/internal/models"
	"github.com/taskforge/api/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTaskTitle    = errors.New("task title cannot be empty")
	ErrEmptyCommentContent = errors.New("comment content cannot be empty")
)

// TaskService provides business logic for task and comment operations.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents parameters to create a new task.
type CreateTaskInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description *string
	Status      *string
	Priority    *string
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
	CreatedBy   uuid.UUID
}

// CreateTask creates a task at the end of its (project, status) group.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidTaskTitle
	}

	status := constants.DefaultTaskStatus
	if input.Status != nil {
		status = *input.Status
	}
	priority := constants.DefaultTaskPriority
	if input.Priority != nil {
		priority = *input.Priority
	}

	position, err := s.taskRepo.NextPosition(input.ProjectID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get next position: %w", err)
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		Position:    position,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks returns a project's tasks ordered by position, then creation.
func (s *TaskService) ListTasks(projectID uuid.UUID) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput carries a merge patch: nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
	Position    *int
}

// UpdateTask applies a merge patch. Moving status to "done" stamps
// completed_at; completed_at is never cleared by this path, matching the
// established update behavior.
func (s *TaskService) UpdateTask(id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
		if *input.Status == constants.TaskStatusDone {
			now := time.Now().UTC()
			task.CompletedAt = &now
		}
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		task.AssignedTo = input.AssignedTo
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Position != nil {
		task.Position = *input.Position
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask hard deletes a task. Any organization member may do this;
// unlike project deletion there is no role gate.
func (s *TaskService) DeleteTask(id uuid.UUID) error {
	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddComment appends a comment to a task.
func (s *TaskService) AddComment(taskID, userID uuid.UUID, content string) (*models.TaskComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyCommentContent
	}

	comment := &models.TaskComment{
		TaskID:  taskID,
		UserID:  userID,
		Content: content,
	}
	if err := s.taskRepo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns a task's comments, oldest first.
func (s *TaskService) ListComments(taskID uuid.UUID) ([]models.TaskComment, error) {
	comments, err := s.taskRepo.ListComments(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
