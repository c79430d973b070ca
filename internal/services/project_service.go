package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskforge/api/internal/constants"
	"github.com/taskforge/api/internal/models"
	"github.com/taskforge/api/internal/repository"
	"github.com/taskforge/api/internal/utils"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectName = errors.New("project name cannot be empty")
	ErrProjectSlugTaken   = errors.New("project slug already exists in this organization")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	OrganizationID uuid.UUID
	Name           string
	Slug           string
	Description    *string
	Status         *string
	Color          *string
	CreatedBy      uuid.UUID
}

// CreateProject creates a project inside an organization. The slug must be
// unique within that organization only.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}
	if !utils.ValidSlug(input.Slug) {
		return nil, ErrInvalidSlug
	}

	taken, err := s.projectRepo.SlugExists(input.OrganizationID, input.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check project slug: %w", err)
	}
	if taken {
		return nil, ErrProjectSlugTaken
	}

	status := constants.DefaultProjectStatus
	if input.Status != nil {
		status = *input.Status
	}
	color := constants.DefaultProjectColor
	if input.Color != nil {
		color = *input.Color
	}

	project := &models.Project{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Slug:           input.Slug,
		Description:    input.Description,
		Status:         status,
		Color:          &color,
		CreatedBy:      input.CreatedBy,
	}

	if err := s.projectRepo.Create(project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProjectSlugTaken
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns an organization's projects, newest first.
func (s *ProjectService) ListProjects(orgID uuid.UUID) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOrganization(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project by ID.
func (s *ProjectService) GetProject(id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// UpdateProjectInput carries a merge patch: nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *string
	Color       *string
}

// UpdateProject applies a merge patch. organization_id and slug are
// immutable after creation.
func (s *ProjectService) UpdateProject(id uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Color != nil {
		project.Color = input.Color
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject hard deletes a project.
func (s *ProjectService) DeleteProject(id uuid.UUID) error {
	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
