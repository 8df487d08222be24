package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/services"
	"github.com/yigit/launchpad/internal/middleware"
	"github.com/yigit/launchpad/internal/pkg/helpers"
)

// StartupController handles startup application endpoints
type StartupController struct {
	startupService services.StartupService
}

// NewStartupController creates a new StartupController
func NewStartupController(startupService services.StartupService) *StartupController {
	return &StartupController{
		startupService: startupService,
	}
}

// Submit handles a student's startup submission
// @Summary Submit a startup for review
// @Description Creates a PENDING startup application. Rejected founders must wait for the cooldown to elapse.
// @Tags startups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitStartupRequest true "Startup details"
// @Success 201 {object} dto.APIResponse{data=models.Startup} "Startup submitted"
// @Failure 400 {object} dto.ErrorResponse "Missing fields or inactive startup"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a student, or cooldown still running (details carry status and reapply_after)"
// @Failure 409 {object} dto.ErrorResponse "An application is already pending or approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /startups [post]
func (c *StartupController) Submit(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitStartupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	startup, err := c.startupService.Submit(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(startup, "Startup submitted for review"))
}

// GetMine returns the caller's latest startup
// @Summary Get my startup
// @Description Returns null when the caller has never applied, a notice while pending, rejection details when rejected and the full record once approved.
// @Tags startups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MyStartupView}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /startups/me [get]
func (c *StartupController) GetMine(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	view, err := c.startupService.GetMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}

// Withdraw removes the caller's latest startup
// @Summary Withdraw my startup
// @Tags startups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /startups/me [delete]
func (c *StartupController) Withdraw(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	if err := c.startupService.Withdraw(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Startup withdrawn"))
}

// ListForReview lists startups for admins
// @Summary List startups (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {object} dto.APIResponse{data=[]models.Startup}
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/startups [get]
func (c *StartupController) ListForReview(ctx *gin.Context) {
	var status *models.StartupStatus
	if raw := strings.TrimSpace(ctx.Query("status")); raw != "" {
		s := models.StartupStatus(strings.ToUpper(raw))
		status = &s
	}

	startups, err := c.startupService.ListForReview(ctx.Request.Context(), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(startups, ""))
}

// Get returns one startup to an admin
// @Summary Get a startup (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Startup ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Startup}
// @Failure 404 {object} dto.ErrorResponse "Startup not found"
// @Router /admin/startups/{id} [get]
func (c *StartupController) Get(ctx *gin.Context) {
	id, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	startup, err := c.startupService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(startup, ""))
}

// Approve approves a startup
// @Summary Approve a startup (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Startup ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Startup}
// @Failure 404 {object} dto.ErrorResponse "Startup not found"
// @Failure 409 {object} dto.ErrorResponse "Superseded application or founder already has another open application"
// @Router /admin/startups/{id}/approve [post]
func (c *StartupController) Approve(ctx *gin.Context) {
	id, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	startup, err := c.startupService.Approve(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(startup, "Startup approved"))
}

// Reject rejects a startup and starts the reapply cooldown
// @Summary Reject a startup (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Startup ID" Format(uuid)
// @Param request body dto.RejectStartupRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=models.Startup}
// @Failure 400 {object} dto.ErrorResponse "Reason missing"
// @Failure 409 {object} dto.ErrorResponse "Startup is not pending"
// @Failure 404 {object} dto.ErrorResponse "Startup not found"
// @Router /admin/startups/{id}/reject [post]
func (c *StartupController) Reject(ctx *gin.Context) {
	id, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RejectStartupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	startup, err := c.startupService.Reject(ctx.Request.Context(), id, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(startup, "Startup rejected"))
}
