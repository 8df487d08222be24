package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/launchpad/internal/app/auth"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/services"
	"github.com/yigit/launchpad/internal/middleware"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/helpers"
)

// JobController handles job and application endpoints
type JobController struct {
	jobService services.JobService
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService) *JobController {
	return &JobController{
		jobService: jobService,
	}
}

func capabilityOf(ctx *gin.Context) (*auth.Capability, bool) {
	capability, ok := middleware.GetCapability(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Capability not resolved"))
		return nil, false
	}
	return capability, true
}

// ListJobs lists the jobs visible to the caller
// @Summary List jobs
// @Description Admins see every job, approved startups see their own, everyone else gets an empty list.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Job}
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	capability, ok := capabilityOf(ctx)
	if !ok {
		return
	}

	jobs, err := c.jobService.ListJobs(ctx.Request.Context(), capability)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(jobs, ""))
}

// GetJob returns a job
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 403 {object} dto.ErrorResponse "Job belongs to another startup"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	capability, ok := capabilityOf(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	job, err := c.jobService.GetJob(ctx.Request.Context(), capability, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job, ""))
}

// CreateJob posts a job for the caller's startup
// @Summary Create a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.APIResponse{data=models.Job}
// @Failure 400 {object} dto.ErrorResponse "Invalid job data"
// @Failure 403 {object} dto.ErrorResponse "Approved startup required"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	capability, ok := capabilityOf(ctx)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	job, err := c.jobService.CreateJob(ctx.Request.Context(), capability, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(job, "Job created"))
}

// UpdateJob updates a job owned by the caller's startup
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID" Format(uuid)
// @Param request body dto.UpdateJobRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 403 {object} dto.ErrorResponse "Not the owning startup"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	capability, ok := capabilityOf(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	job, err := c.jobService.UpdateJob(ctx.Request.Context(), capability, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job, "Job updated"))
}

// DeleteJob deletes a job owned by the caller's startup
// @Summary Delete a job
// @Tags jobs
// @Security BearerAuth
// @Param id path string true "Job ID" Format(uuid)
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owning startup"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	capability, ok := capabilityOf(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.jobService.DeleteJob(ctx.Request.Context(), capability, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Job deleted"))
}

// Apply applies the caller to a job
// @Summary Apply to a job
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID" Format(uuid)
// @Param request body dto.ApplyRequest true "Resume link"
// @Success 201 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.ErrorResponse "Resume link missing"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /jobs/{id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	jobID, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	application, err := c.jobService.Apply(ctx.Request.Context(), jobID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(application, "Application submitted"))
}

// ListApplications lists the applications of a job
// @Summary List applications of a job
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.Application}
// @Failure 403 {object} dto.ErrorResponse "Not the owning startup"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id}/applications [get]
func (c *JobController) ListApplications(ctx *gin.Context) {
	capability, ok := capabilityOf(ctx)
	if !ok {
		return
	}
	jobID, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	applications, err := c.jobService.ListApplications(ctx.Request.Context(), capability, jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(applications, ""))
}

// UpdateApplicationStatus moves an application to a reviewer-defined status
// @Summary Update application status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID" Format(uuid)
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 403 {object} dto.ErrorResponse "Not the owning startup"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/status [put]
func (c *JobController) UpdateApplicationStatus(ctx *gin.Context) {
	capability, ok := capabilityOf(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	application, err := c.jobService.UpdateApplicationStatus(ctx.Request.Context(), capability, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(application, "Application updated"))
}

// ListMyApplications lists the caller's own applications
// @Summary List my applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Application}
// @Router /applications/me [get]
func (c *JobController) ListMyApplications(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	applications, err := c.jobService.ListMyApplications(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(applications, ""))
}
