package authz

import "github.com/taskforge/api/internal/models"

// roleLevel orders roles from least to most privileged.
var roleLevel = map[models.MemberRole]int{
	models.RoleMember:  0,
	models.RoleManager: 1,
	models.RoleAdmin:   2,
	models.RoleOwner:   3,
}

// RoleAtLeast reports whether role grants at least the privileges of min.
func RoleAtLeast(role, min models.MemberRole) bool {
	r, ok := roleLevel[role]
	if !ok {
		return false
	}
	m, ok := roleLevel[min]
	if !ok {
		return false
	}
	return r >= m
}

// CanDeleteProject is restricted to owners and admins. Task deletion
// deliberately has no such gate; any member may delete a task.
func CanDeleteProject(role models.MemberRole) bool {
	return RoleAtLeast(role, models.RoleAdmin)
}
