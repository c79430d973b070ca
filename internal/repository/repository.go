package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email (callers pass lowercased email)
	FindByEmail(email string) (*models.User, error)

	// UpdateLastLogin stamps the user's last successful login
	UpdateLastLogin(id uuid.UUID, at time.Time) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// CreateWithOwner creates an organization and its owner membership
	// within a single transaction.
	CreateWithOwner(org *models.Organization, ownerID uuid.UUID) (*models.OrganizationMember, error)

	// FindByID finds an active organization by ID
	FindByID(id uuid.UUID) (*models.Organization, error)

	// SlugExists reports whether an organization slug is already taken
	SlugExists(slug string) (bool, error)

	// OrganizationExists reports whether an active organization exists
	OrganizationExists(orgID uuid.UUID) (bool, error)

	// ListForUser lists memberships for a user, newest organization first
	ListForUser(userID uuid.UUID) ([]models.OrganizationMember, error)

	// ListMembers lists an organization's members, earliest joined first
	ListMembers(organizationID uuid.UUID) ([]models.OrganizationMember, error)

	// FindMemberRole resolves a user's role within an organization
	FindMemberRole(organizationID, userID uuid.UUID) (models.MemberRole, bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uuid.UUID) (*models.Project, error)

	// SlugExists reports whether a slug is taken within the organization
	SlugExists(organizationID uuid.UUID, slug string) (bool, error)

	// ListByOrganization lists projects, newest first
	ListByOrganization(organizationID uuid.UUID) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete hard deletes a project
	Delete(id uuid.UUID) error

	// OrganizationIDForProject resolves a project's owning organization
	OrganizationIDForProject(projectID uuid.UUID) (uuid.UUID, error)
}

// TaskRepository defines the interface for task and comment data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// NextPosition returns 1 + max(position) for the project/status group,
	// 0 when the group is empty
	NextPosition(projectID uuid.UUID, status string) (int, error)

	// FindByID finds a task by ID
	FindByID(id uuid.UUID) (*models.Task, error)

	// ListByProject lists tasks ordered by position, then creation time
	ListByProject(projectID uuid.UUID) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete hard deletes a task
	Delete(id uuid.UUID) error

	// ProjectIDForTask resolves a task's project
	ProjectIDForTask(taskID uuid.UUID) (uuid.UUID, error)

	// CreateComment adds a comment to a task
	CreateComment(comment *models.TaskComment) error

	// ListComments lists a task's comments, oldest first
	ListComments(taskID uuid.UUID) ([]models.TaskComment, error)
}
