package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskforge/api/internal/models"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// CreateWithOwner creates the organization and the creator's owner
// membership in a single transaction.
func (r *GormOrganizationRepository) CreateWithOwner(org *models.Organization, ownerID uuid.UUID) (*models.OrganizationMember, error) {
	member := &models.OrganizationMember{
		UserID: ownerID,
		Role:   models.RoleOwner,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		member.OrganizationID = org.ID
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// FindByID finds an active organization by ID
func (r *GormOrganizationRepository) FindByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// SlugExists reports whether an organization slug is already taken
func (r *GormOrganizationRepository) SlugExists(slug string) (bool, error) {
	var exists bool
	err := r.db.Raw(
		"SELECT EXISTS(SELECT 1 FROM organizations WHERE slug = ?)", slug,
	).Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists, nil
}

// OrganizationExists reports whether an active organization exists
func (r *GormOrganizationRepository) OrganizationExists(orgID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Raw(
		"SELECT EXISTS(SELECT 1 FROM organizations WHERE id = ? AND is_active = ?)", orgID, true,
	).Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListForUser lists memberships for a user, newest organization first
func (r *GormOrganizationRepository) ListForUser(userID uuid.UUID) ([]models.OrganizationMember, error) {
	var memberships []models.OrganizationMember
	err := r.db.Preload("Organization").
		Joins("JOIN organizations ON organizations.id = organization_members.organization_id").
		Where("organization_members.user_id = ? AND organizations.is_active = ?", userID, true).
		Order("organizations.created_at DESC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists an organization's members, earliest joined first
func (r *GormOrganizationRepository) ListMembers(organizationID uuid.UUID) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	err := r.db.Preload("User").
		Where("organization_id = ?", organizationID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// FindMemberRole resolves a user's role within an organization
func (r *GormOrganizationRepository) FindMemberRole(organizationID, userID uuid.UUID) (models.MemberRole, bool, error) {
	var member models.OrganizationMember
	err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return member.Role, true, nil
}
