package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskforge/api/internal/dto"
	apierrors "github.com/taskforge/api/internal/errors"
	"github.com/taskforge/api/internal/middleware"
	"github.com/taskforge/api/internal/services"
)

// OrganizationHandler coordinates organization HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
	logger     *zap.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// Create creates a new organization with the caller as owner.
func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateOrganizationRequest struct {
		Name        string  `json:"name" binding:"required"`
		Slug        string  `json:"slug" binding:"required"`
		Description *string `json:"description"`
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, member, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrganizationName):
			apierrors.BadRequest(c, "Organization name is required")
		case errors.Is(err, services.ErrInvalidSlug):
			apierrors.BadRequest(c, "Slug can only contain letters, numbers, and hyphens")
		case errors.Is(err, services.ErrSlugTaken):
			apierrors.Conflict(c, fmt.Sprintf("Organization with slug '%s' already exists", req.Slug))
		default:
			h.logger.Error("failed to create organization", zap.Error(err))
			apierrors.DatabaseError(c)
		}
		return
	}

	h.logger.Info("organization created",
		zap.String("slug", org.Slug),
		zap.String("owner_id", userID.String()),
	)

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org, member.Role))
}

// List returns the organizations the caller belongs to, annotated with
// the caller's role in each.
func (h *OrganizationHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	memberships, err := h.orgService.ListOrganizationsForUser(userID)
	if err != nil {
		h.logger.Error("failed to list organizations", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	orgs := make([]dto.OrganizationDTO, len(memberships))
	for i, m := range memberships {
		orgs[i] = dto.ToOrganizationDTO(m.Organization, m.Role)
	}

	c.JSON(http.StatusOK, orgs)
}

// Get returns a single organization with the caller's role. Membership was
// already resolved by RequireOrganizationAccess.
func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	// The access middleware stores the resolved role; a missing role means
	// the route was wired without it.
	role, exists := middleware.GetMemberRole(c)
	if !exists {
		apierrors.InternalError(c, "")
		return
	}

	org, err := h.orgService.GetOrganization(orgID)
	if err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			apierrors.NotFound(c, "Organization not found")
			return
		}
		h.logger.Error("failed to fetch organization", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org, role))
}

// ListMembers returns an organization's members with user profile fields.
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	members, err := h.orgService.ListMembers(orgID)
	if err != nil {
		h.logger.Error("failed to list members", zap.Error(err))
		apierrors.DatabaseError(c)
		return
	}

	memberDTOs := make([]dto.OrganizationMemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = dto.ToOrganizationMemberDTO(m)
	}

	c.JSON(http.StatusOK, memberDTOs)
}
