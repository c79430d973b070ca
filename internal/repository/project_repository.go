package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskforge/api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether a slug is taken within the organization
func (r *GormProjectRepository) SlugExists(organizationID uuid.UUID, slug string) (bool, error) {
	var exists bool
	err := r.db.Raw(
		"SELECT EXISTS(SELECT 1 FROM projects WHERE organization_id = ? AND slug = ?)",
		organizationID, slug,
	).Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListByOrganization lists projects, newest first
func (r *GormProjectRepository) ListByOrganization(organizationID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete hard deletes a project
func (r *GormProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// OrganizationIDForProject resolves a project's owning organization
func (r *GormProjectRepository) OrganizationIDForProject(projectID uuid.UUID) (uuid.UUID, error) {
	var project models.Project
	err := r.db.Select("organization_id").First(&project, "id = ?", projectID).Error
	if err != nil {
		return uuid.Nil, err
	}
	return project.OrganizationID, nil
}
