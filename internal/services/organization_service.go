package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskforge/api/internal/models"
	"github.com/taskforge/api/internal/repository"
	"github.com/taskforge/api/internal/utils"
)

var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
	ErrInvalidSlug             = errors.New("slug can only contain letters, numbers, and hyphens")
	ErrSlugTaken               = errors.New("organization slug already exists")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name        string
	Slug        string
	Description *string
	OwnerID     uuid.UUID
}

// CreateOrganization creates a new organization with the creator as owner.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*models.Organization, *models.OrganizationMember, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, nil, ErrInvalidOrganizationName
	}
	if !utils.ValidSlug(input.Slug) {
		return nil, nil, ErrInvalidSlug
	}

	// Fast path for a friendly Conflict error; the unique index on slug
	// remains the authoritative guard under concurrent creation.
	taken, err := s.orgRepo.SlugExists(input.Slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, nil, ErrSlugTaken
	}

	org := &models.Organization{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		IsActive:    true,
	}

	member, err := s.orgRepo.CreateWithOwner(org, input.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrSlugTaken
		}
		return nil, nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, member, nil
}

// ListOrganizationsForUser returns memberships (with organizations) for
// the user, newest organization first.
func (s *OrganizationService) ListOrganizationsForUser(userID uuid.UUID) ([]models.OrganizationMember, error) {
	memberships, err := s.orgRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return memberships, nil
}

// GetOrganization returns an active organization by ID.
func (s *OrganizationService) GetOrganization(orgID uuid.UUID) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// ListMembers returns an organization's members with user profiles.
func (s *OrganizationService) ListMembers(orgID uuid.UUID) ([]models.OrganizationMember, error) {
	members, err := s.orgRepo.ListMembers(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization members: %w", err)
	}
	return members, nil
}
