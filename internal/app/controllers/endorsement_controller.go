package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/services"
	"github.com/yigit/launchpad/internal/middleware"
	"github.com/yigit/launchpad/internal/pkg/helpers"
)

// EndorsementController handles peer endorsements
type EndorsementController struct {
	trustService services.TrustService
}

// NewEndorsementController creates a new EndorsementController
func NewEndorsementController(trustService services.TrustService) *EndorsementController {
	return &EndorsementController{
		trustService: trustService,
	}
}

// Endorse rates another user and refreshes their trust score
// @Summary Endorse a user
// @Tags endorsements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EndorseRequest true "Endorsement"
// @Success 201 {object} dto.APIResponse{data=dto.EndorsementResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing user, zero rating or self-endorsement"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /endorsements [post]
func (c *EndorsementController) Endorse(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	var req dto.EndorseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	toUserID, err := helpers.ParseOptionalUUID(req.ToUserID, "toUserId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.trustService.Endorse(ctx.Request.Context(), userID, toUserID, req.Rating)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Endorsement recorded"))
}

// ListReceived lists the endorsements a user received
// @Summary List endorsements received by a user
// @Tags endorsements
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Endorsement}
// @Router /users/{id}/endorsements [get]
func (c *EndorsementController) ListReceived(ctx *gin.Context) {
	id, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	endorsements, err := c.trustService.ListReceived(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(endorsements, ""))
}
