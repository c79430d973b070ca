package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/api/internal/models"
)

// OrganizationDTO represents an organization in API responses, annotated
// with the caller's resolved role (passed through from authorization, not
// re-queried).
type OrganizationDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description *string           `json:"description"`
	LogoURL     *string           `json:"logo_url"`
	Website     *string           `json:"website"`
	IsActive    bool              `json:"is_active"`
	Role        models.MemberRole `json:"role"`
	CreatedAt   time.Time         `json:"created_at"`
}

// OrganizationMemberDTO represents a member with joined profile fields.
type OrganizationMemberDTO struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	UserEmail     string            `json:"user_email"`
	UserFirstName *string           `json:"user_first_name"`
	UserLastName  *string           `json:"user_last_name"`
	Role          models.MemberRole `json:"role"`
	JoinedAt      time.Time         `json:"joined_at"`
}

// ToOrganizationDTO converts an Organization model plus the caller's role.
func ToOrganizationDTO(org models.Organization, role models.MemberRole) OrganizationDTO {
	return OrganizationDTO{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		Description: org.Description,
		LogoURL:     org.LogoURL,
		Website:     org.Website,
		IsActive:    org.IsActive,
		Role:        role,
		CreatedAt:   org.CreatedAt,
	}
}

// ToOrganizationMemberDTO converts a membership with preloaded user.
func ToOrganizationMemberDTO(member models.OrganizationMember) OrganizationMemberDTO {
	return OrganizationMemberDTO{
		ID:            member.ID,
		UserID:        member.UserID,
		UserEmail:     member.User.Email,
		UserFirstName: member.User.FirstName,
		UserLastName:  member.User.LastName,
		Role:          member.Role,
		JoinedAt:      member.JoinedAt,
	}
}
