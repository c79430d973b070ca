package authz

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/api/internal/models"
)

type fakeOrgResolver struct {
	existing map[uuid.UUID]bool
}

func (f *fakeOrgResolver) OrganizationExists(orgID uuid.UUID) (bool, error) {
	return f.existing[orgID], nil
}

type fakeProjectResolver struct {
	orgs map[uuid.UUID]uuid.UUID
}

func (f *fakeProjectResolver) OrganizationIDForProject(projectID uuid.UUID) (uuid.UUID, error) {
	orgID, ok := f.orgs[projectID]
	if !ok {
		return uuid.Nil, errors.New("record not found")
	}
	return orgID, nil
}

type fakeTaskResolver struct {
	projects map[uuid.UUID]uuid.UUID
}

func (f *fakeTaskResolver) ProjectIDForTask(taskID uuid.UUID) (uuid.UUID, error) {
	projectID, ok := f.projects[taskID]
	if !ok {
		return uuid.Nil, errors.New("record not found")
	}
	return projectID, nil
}

type membershipKey struct {
	orgID  uuid.UUID
	userID uuid.UUID
}

type fakeMembershipStore struct {
	roles map[membershipKey]models.MemberRole
}

func (f *fakeMembershipStore) FindMemberRole(organizationID, userID uuid.UUID) (models.MemberRole, bool, error) {
	role, ok := f.roles[membershipKey{organizationID, userID}]
	return role, ok, nil
}

type engineFixture struct {
	engine    *Engine
	orgID     uuid.UUID
	projectID uuid.UUID
	taskID    uuid.UUID
	members   *fakeMembershipStore
}

func newEngineFixture() engineFixture {
	orgID := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()

	members := &fakeMembershipStore{roles: map[membershipKey]models.MemberRole{}}
	engine := NewEngine(
		&fakeOrgResolver{existing: map[uuid.UUID]bool{orgID: true}},
		&fakeProjectResolver{orgs: map[uuid.UUID]uuid.UUID{projectID: orgID}},
		&fakeTaskResolver{projects: map[uuid.UUID]uuid.UUID{taskID: projectID}},
		members,
	)

	return engineFixture{
		engine:    engine,
		orgID:     orgID,
		projectID: projectID,
		taskID:    taskID,
		members:   members,
	}
}

func TestResolveOwningOrganization(t *testing.T) {
	f := newEngineFixture()

	orgID, err := f.engine.ResolveOwningOrganization(KindOrganization, f.orgID)
	require.NoError(t, err)
	require.Equal(t, f.orgID, orgID)

	orgID, err = f.engine.ResolveOwningOrganization(KindProject, f.projectID)
	require.NoError(t, err)
	require.Equal(t, f.orgID, orgID)

	orgID, err = f.engine.ResolveOwningOrganization(KindTask, f.taskID)
	require.NoError(t, err)
	require.Equal(t, f.orgID, orgID)
}

func TestResolveOwningOrganization_MissingResource(t *testing.T) {
	f := newEngineFixture()

	_, err := f.engine.ResolveOwningOrganization(KindProject, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.engine.ResolveOwningOrganization(KindTask, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveOwningOrganization_UnknownKind(t *testing.T) {
	f := newEngineFixture()

	_, err := f.engine.ResolveOwningOrganization(ResourceKind("widget"), uuid.New())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestAuthorize_MemberGetsRole(t *testing.T) {
	f := newEngineFixture()
	userID := uuid.New()
	f.members.roles[membershipKey{f.orgID, userID}] = models.RoleManager

	role, err := f.engine.Authorize(userID, KindOrganization, f.orgID)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, role)

	role, err = f.engine.Authorize(userID, KindTask, f.taskID)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, role)
}

func TestAuthorize_NonMemberMaskedAsNotFound(t *testing.T) {
	f := newEngineFixture()

	_, err := f.engine.Authorize(uuid.New(), KindOrganization, f.orgID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.engine.Authorize(uuid.New(), KindProject, f.projectID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthorizeMember_DistinguishesMissingFromNonMember(t *testing.T) {
	f := newEngineFixture()
	userID := uuid.New()

	// Existing organization, no membership: forbidden, not masked.
	_, err := f.engine.AuthorizeMember(userID, KindOrganization, f.orgID)
	require.ErrorIs(t, err, ErrNotMember)

	// Unknown organization: still not found.
	_, err = f.engine.AuthorizeMember(userID, KindOrganization, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	// A member resolves their role as usual.
	f.members.roles[membershipKey{f.orgID, userID}] = models.RoleAdmin
	role, err := f.engine.AuthorizeMember(userID, KindOrganization, f.orgID)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, role)
}

func TestRoleAtLeast(t *testing.T) {
	require.True(t, RoleAtLeast(models.RoleOwner, models.RoleAdmin))
	require.True(t, RoleAtLeast(models.RoleAdmin, models.RoleAdmin))
	require.False(t, RoleAtLeast(models.RoleManager, models.RoleAdmin))
	require.False(t, RoleAtLeast(models.RoleMember, models.RoleManager))
}

func TestCanDeleteProject(t *testing.T) {
	require.True(t, CanDeleteProject(models.RoleOwner))
	require.True(t, CanDeleteProject(models.RoleAdmin))
	require.False(t, CanDeleteProject(models.RoleManager))
	require.False(t, CanDeleteProject(models.RoleMember))
}
