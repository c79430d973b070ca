package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project belongs to exactly one organization for its lifetime;
// organization_id is never updated after creation.
type Project struct {
	ID             uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_projects_org_slug;index" json:"organization_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug           string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_projects_org_slug" json:"slug"`
	Description    *string   `gorm:"type:text" json:"description"`
	Status         string    `gorm:"type:varchar(50);not null" json:"status"`
	Color          *string   `gorm:"type:varchar(20)" json:"color"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Tasks        []Task       `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
