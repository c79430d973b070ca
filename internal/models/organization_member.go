package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRole string

const (
	RoleOwner   MemberRole = "owner"
	RoleAdmin   MemberRole = "admin"
	RoleManager MemberRole = "manager"
	RoleMember  MemberRole = "member"
)

// ParseMemberRole rejects role strings outside the closed enumeration.
// Comparison is case-sensitive; the store only ever holds these four values.
func ParseMemberRole(s string) (MemberRole, error) {
	switch MemberRole(s) {
	case RoleOwner, RoleAdmin, RoleManager, RoleMember:
		return MemberRole(s), nil
	}
	return "", fmt.Errorf("unknown member role %q", s)
}

type OrganizationMember struct {
	ID             uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_org_members_org_user;index" json:"organization_id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_org_members_org_user;index" json:"user_id"`
	Role           MemberRole `gorm:"type:varchar(20);not null" json:"role"`
	InvitedBy      *uuid.UUID `gorm:"type:uuid" json:"invited_by"`
	JoinedAt       time.Time  `json:"joined_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *OrganizationMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}
