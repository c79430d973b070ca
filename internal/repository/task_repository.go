package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskforge/api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// NextPosition returns 1 + max(position) within the project/status group.
// The first task in a group gets position 0.
func (r *GormTaskRepository) NextPosition(projectID uuid.UUID, status string) (int, error) {
	var next int
	err := r.db.Raw(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE project_id = ? AND status = ?",
		projectID, status,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists tasks ordered by position, then creation time
func (r *GormTaskRepository) ListByProject(projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("project_id = ?", projectID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

// ProjectIDForTask resolves a task's project
func (r *GormTaskRepository) ProjectIDForTask(taskID uuid.UUID) (uuid.UUID, error) {
	var task models.Task
	err := r.db.Select("project_id").First(&task, "id = ?", taskID).Error
	if err != nil {
		return uuid.Nil, err
	}
	return task.ProjectID, nil
}

// CreateComment adds a comment to a task
func (r *GormTaskRepository) CreateComment(comment *models.TaskComment) error {
	return r.db.Create(comment).Error
}

// ListComments lists a task's comments, oldest first
func (r *GormTaskRepository) ListComments(taskID uuid.UUID) ([]models.TaskComment, error) {
	var comments []models.TaskComment
	err := r.db.Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
