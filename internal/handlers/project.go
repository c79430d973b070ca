package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskforge/api/internal/authz"
	"github.com/taskforge/api/internal/dto"
	apierrors "github.com/taskforge/api/internal/errors"
	"github.com/taskforge/api/internal/middleware"
	"github.com/taskforge/api/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// Create creates a project in an organization. The :id param is the
// organization, already checked by RequireOrganizationAccess.
func (h *ProjectHandler) Create(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string  `json:"name" binding:"required"`
		Slug        string  `json:"slug" binding:"required"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Color       *string `json:"color"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		OrganizationID: orgID,
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Status:         req.Status,
		Color:          req.Color,
		CreatedBy:      userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidProjectName):
			apierrors.BadRequest(c, "Project name is required")
		case errors.Is(err, services.ErrInvalidSlug):
			apierrors.BadRequest(c, "Slug can only contain letters, numbers, and hyphens")
		case errors.Is(err, services.ErrProjectSlugTaken):
			apierrors.Conflict(c, fmt.Sprintf("Project with slug '%s' already exists in this organization", req.Slug))
		default:
			h.logger.Error("failed to create project", zap.Error(err))
			apierrors.DatabaseError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListByOrganization returns an organization's projects, newest first.
func (h *ProjectHandler) ListByOrganization(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	projects, err := h.projectService.ListProjects(orgID)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// Get returns a single project.
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		h.logger.Error("failed to fetch project", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// Update applies a merge patch to a project. Absent fields keep their
// current values.
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type UpdateProjectRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Color       *string `json:"color"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(projectID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Color:       req.Color,
	})
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		h.logger.Error("failed to update project", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// Delete removes a project. Only owners and admins may delete.
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	role, exists := middleware.GetMemberRole(c)
	if !exists || !authz.CanDeleteProject(role) {
		apierrors.Forbidden(c, "Only organization owners and admins can delete projects")
		return
	}

	if err := h.projectService.DeleteProject(projectID); err != nil {
		h.logger.Error("failed to delete project", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.Status(http.StatusNoContent)
}
