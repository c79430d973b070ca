package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task status and priority are free-form strings; "todo"/"medium" are the
// creation defaults and "done" drives the completed_at side effect.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Title       string     `gorm:"type:varchar(500);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(50);not null;index" json:"status"`
	Priority    string     `gorm:"type:varchar(50);not null" json:"priority"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid" json:"assigned_to"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Project  Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Comments []TaskComment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
