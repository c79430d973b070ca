// Package authz answers "may this user perform this operation on this
// resource?" by walking the resource hierarchy up to the owning
// organization and resolving the caller's membership role there.
package authz

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskforge/api/internal/models"
)

type ResourceKind string

const (
	KindOrganization ResourceKind = "organization"
	KindProject      ResourceKind = "project"
	KindTask         ResourceKind = "task"
)

// ErrNotFound covers both "resource does not exist" and "caller is not a
// member of the owning organization". Collapsing the two keeps resource
// existence from leaking to non-members.
var ErrNotFound = errors.New("resource not found")

// ErrNotMember reports that the organization exists but the caller holds
// no membership in it. Only AuthorizeMember returns it; Authorize masks
// the same condition as ErrNotFound.
var ErrNotMember = errors.New("not a member of the organization")

// OrganizationResolver reports whether an active organization exists.
type OrganizationResolver interface {
	OrganizationExists(orgID uuid.UUID) (bool, error)
}

// ProjectResolver resolves a project to its owning organization.
type ProjectResolver interface {
	OrganizationIDForProject(projectID uuid.UUID) (uuid.UUID, error)
}

// TaskResolver resolves a task to its project.
type TaskResolver interface {
	ProjectIDForTask(taskID uuid.UUID) (uuid.UUID, error)
}

// MembershipStore looks up a user's role within an organization.
// found is false when no membership row exists.
type MembershipStore interface {
	FindMemberRole(organizationID, userID uuid.UUID) (role models.MemberRole, found bool, err error)
}

// Engine resolves access chains. It holds no state of its own; every
// decision is a fresh walk against the stores.
type Engine struct {
	orgs     OrganizationResolver
	projects ProjectResolver
	tasks    TaskResolver
	members  MembershipStore
}

func NewEngine(orgs OrganizationResolver, projects ProjectResolver, tasks TaskResolver, members MembershipStore) *Engine {
	return &Engine{
		orgs:     orgs,
		projects: projects,
		tasks:    tasks,
		members:  members,
	}
}

// ResolveOwningOrganization walks a resource to the organization that owns
// it: organizations own themselves, projects resolve directly, tasks
// resolve through their project. A resource that cannot be resolved yields
// ErrNotFound.
func (e *Engine) ResolveOwningOrganization(kind ResourceKind, id uuid.UUID) (uuid.UUID, error) {
	switch kind {
	case KindOrganization:
		return id, nil
	case KindProject:
		orgID, err := e.projects.OrganizationIDForProject(id)
		if err != nil {
			return uuid.Nil, ErrNotFound
		}
		return orgID, nil
	case KindTask:
		projectID, err := e.tasks.ProjectIDForTask(id)
		if err != nil {
			return uuid.Nil, ErrNotFound
		}
		return e.ResolveOwningOrganization(KindProject, projectID)
	default:
		return uuid.Nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}

// Authorize resolves the caller's effective role on the resource. Both a
// missing resource and a missing membership return ErrNotFound.
func (e *Engine) Authorize(userID uuid.UUID, kind ResourceKind, id uuid.UUID) (models.MemberRole, error) {
	orgID, err := e.ResolveOwningOrganization(kind, id)
	if err != nil {
		return "", err
	}

	role, found, err := e.members.FindMemberRole(orgID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve membership: %w", err)
	}
	if !found {
		return "", ErrNotFound
	}
	return role, nil
}

// AuthorizeMember resolves the caller's role like Authorize but separates
// the two failure modes: a resource that does not exist yields ErrNotFound
// while an existing organization without a membership yields ErrNotMember.
func (e *Engine) AuthorizeMember(userID uuid.UUID, kind ResourceKind, id uuid.UUID) (models.MemberRole, error) {
	orgID, err := e.ResolveOwningOrganization(kind, id)
	if err != nil {
		return "", err
	}

	role, found, err := e.members.FindMemberRole(orgID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve membership: %w", err)
	}
	if found {
		return role, nil
	}

	exists, err := e.orgs.OrganizationExists(orgID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve organization: %w", err)
	}
	if !exists {
		return "", ErrNotFound
	}
	return "", ErrNotMember
}
