package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskforge/api/internal/authz"
	"github.com/taskforge/api/internal/constants"
	"github.com/taskforge/api/internal/database"
	"github.com/taskforge/api/internal/dto"
	"github.com/taskforge/api/internal/middleware"
	"github.com/taskforge/api/internal/models"
	"github.com/taskforge/api/internal/repository"
	"github.com/taskforge/api/internal/services"
)

type projectTestEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	projectService *services.ProjectService
	currentUser    uuid.UUID
}

func setupProjectTestEnv(t *testing.T) *projectTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	env := &projectTestEnv{db: db}

	orgRepo := repository.NewOrganizationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	engine := authz.NewEngine(orgRepo, projectRepo, taskRepo, orgRepo)

	env.projectService = services.NewProjectService(projectRepo)
	handler := NewProjectHandler(env.projectService, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, env.currentUser)
	})
	r.POST("/api/organizations/:id/projects", middleware.RequireOrganizationMember(engine), handler.Create)
	orgScoped := r.Group("/api/organizations/:id", middleware.RequireOrganizationAccess(engine))
	orgScoped.GET("/projects", handler.ListByOrganization)
	projScoped := r.Group("/api/projects/:id", middleware.RequireProjectAccess(engine))
	projScoped.GET("", handler.Get)
	projScoped.PATCH("", handler.Update)
	projScoped.DELETE("", handler.Delete)
	env.router = r

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

func (env *projectTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *projectTestEnv) createOrg(t *testing.T, slug string) *models.Organization {
	t.Helper()
	org := &models.Organization{
		Name: slug,
		Slug: slug,
	}
	require.NoError(t, env.db.Create(org).Error)
	return org
}

func (env *projectTestEnv) addMember(t *testing.T, orgID, userID uuid.UUID, role models.MemberRole) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
	}).Error)
}

func (env *projectTestEnv) createProject(t *testing.T, orgID, creatorID uuid.UUID, slug string) *models.Project {
	t.Helper()
	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		OrganizationID: orgID,
		Name:           slug,
		Slug:           slug,
		CreatedBy:      creatorID,
	})
	require.NoError(t, err)
	return project
}

func patchJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProjectHandler_Create_Defaults(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := env.createUser(t, "user@example.com")
	org := env.createOrg(t, "acme")
	env.addMember(t, org.ID, user.ID, models.RoleMember)
	env.currentUser = user.ID

	w := postJSON(t, env.router, "/api/organizations/"+org.ID.String()+"/projects", map[string]string{
		"name": "Website Redesign",
		"slug": "website-redesign",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, constants.DefaultProjectStatus, response.Status)
	require.NotNil(t, response.Color)
	require.Equal(t, constants.DefaultProjectColor, *response.Color)
	require.Equal(t, user.ID, response.CreatedBy)
	require.Equal(t, org.ID, response.OrganizationID)
}

func TestProjectHandler_Create_SlugUniquePerOrganization(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := env.createUser(t, "user@example.com")
	org := env.createOrg(t, "acme")
	otherOrg := env.createOrg(t, "globex")
	env.addMember(t, org.ID, user.ID, models.RoleMember)
	env.addMember(t, otherOrg.ID, user.ID, models.RoleMember)
	env.currentUser = user.ID

	w := postJSON(t, env.router, "/api/organizations/"+org.ID.String()+"/projects", map[string]string{
		"name": "Website", "slug": "website",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same slug in the same organization conflicts.
	w = postJSON(t, env.router, "/api/organizations/"+org.ID.String()+"/projects", map[string]string{
		"name": "Website Again", "slug": "website",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Same slug in a different organization is fine.
	w = postJSON(t, env.router, "/api/organizations/"+otherOrg.ID.String()+"/projects", map[string]string{
		"name": "Website", "slug": "website",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestProjectHandler_Create_NonMemberForbidden(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	outsider := env.createUser(t, "outsider@example.com")
	org := env.createOrg(t, "acme")
	env.addMember(t, org.ID, owner.ID, models.RoleOwner)

	// An existing organization without a membership answers 403, not the
	// 404 mask used on reads.
	env.currentUser = outsider.ID
	w := postJSON(t, env.router, "/api/organizations/"+org.ID.String()+"/projects", map[string]string{
		"name": "Intruder Project",
		"slug": "intruder-project",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// An organization that does not exist stays 404.
	w = postJSON(t, env.router, "/api/organizations/"+uuid.New().String()+"/projects", map[string]string{
		"name": "Ghost Project",
		"slug": "ghost-project",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_List_NewestFirst(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := env.createUser(t, "user@example.com")
	org := env.createOrg(t, "acme")
	env.addMember(t, org.ID, user.ID, models.RoleMember)
	env.currentUser = user.ID

	older := env.createProject(t, org.ID, user.ID, "older")
	newer := env.createProject(t, org.ID, user.ID, "newer")

	require.NoError(t, env.db.Model(&models.Project{}).
		Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/organizations/"+org.ID.String()+"/projects", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response []dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	require.Equal(t, newer.ID, response[0].ID)
	require.Equal(t, older.ID, response[1].ID)
}

func TestProjectHandler_Get_NonMemberMasked(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := env.createUser(t, "user@example.com")
	outsider := env.createUser(t, "outsider@example.com")
	org := env.createOrg(t, "acme")
	env.addMember(t, org.ID, user.ID, models.RoleMember)
	project := env.createProject(t, org.ID, user.ID, "website")

	env.currentUser = outsider.ID
	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+project.ID.String(), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Update_MergePatch(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := env.createUser(t, "user@example.com")
	org := env.createOrg(t, "acme")
	env.addMember(t, org.ID, user.ID, models.RoleMember)
	env.currentUser = user.ID

	project := env.createProject(t, org.ID, user.ID, "website")

	w := patchJSON(t, env.router, "/api/projects/"+project.ID.String(), map[string]string{
		"status": "active",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "active", response.Status)
	require.Equal(t, project.Name, response.Name)
	require.Equal(t, project.Slug, response.Slug)
}

func TestProjectHandler_Delete_RequiresAdmin(t *testing.T) {
	env := setupProjectTestEnv(t)
	admin := env.createUser(t, "admin@example.com")
	member := env.createUser(t, "member@example.com")
	org := env.createOrg(t, "acme")
	env.addMember(t, org.ID, admin.ID, models.RoleAdmin)
	env.addMember(t, org.ID, member.ID, models.RoleMember)

	project := env.createProject(t, org.ID, admin.ID, "website")

	env.currentUser = member.ID
	req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+project.ID.String(), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	env.currentUser = admin.ID
	req = httptest.NewRequest(http.MethodDelete, "/api/projects/"+project.ID.String(), nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/projects/"+project.ID.String(), nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
