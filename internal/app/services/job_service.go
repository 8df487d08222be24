package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/auth"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/repositories"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// JobService defines hiring operations. Every method that touches a startup's
// jobs is checked against the caller's capability.
type JobService interface {
	ListJobs(ctx context.Context, capability *auth.Capability) ([]*models.Job, error)
	GetJob(ctx context.Context, capability *auth.Capability, jobID uuid.UUID) (*models.Job, error)
	CreateJob(ctx context.Context, capability *auth.Capability, req *dto.CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, capability *auth.Capability, jobID uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, capability *auth.Capability, jobID uuid.UUID) error
	Apply(ctx context.Context, jobID, applicantID uuid.UUID, req *dto.ApplyRequest) (*models.Application, error)
	ListApplications(ctx context.Context, capability *auth.Capability, jobID uuid.UUID) ([]*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, capability *auth.Capability, applicationID uuid.UUID, status string) (*models.Application, error)
	ListMyApplications(ctx context.Context, userID uuid.UUID) ([]*models.Application, error)
}

// jobServiceImpl implements JobService
type jobServiceImpl struct {
	jobRepo         repositories.IJobRepository
	applicationRepo repositories.IApplicationRepository
	authzService    *auth.AuthorizationService
	now             Clock
	logger          zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(
	jobRepo repositories.IJobRepository,
	applicationRepo repositories.IApplicationRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) JobService {
	return &jobServiceImpl{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		authzService:    authzService,
		now:             systemClock,
		logger:          logger,
	}
}

// ListJobs returns every job to admins, the caller's own jobs to representatives and nothing otherwise
func (s *jobServiceImpl) ListJobs(ctx context.Context, capability *auth.Capability) ([]*models.Job, error) {
	switch {
	case capability.IsAdmin():
		return s.jobRepo.List(ctx, nil)
	case capability.IsRepresentative():
		startupID := capability.StartupID
		return s.jobRepo.List(ctx, &startupID)
	default:
		return []*models.Job{}, nil
	}
}

func (s *jobServiceImpl) loadJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

func (s *jobServiceImpl) GetJob(ctx context.Context, capability *auth.Capability, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.AuthorizeJobRead(capability, job.CompanyID); err != nil {
		return nil, err
	}
	return job, nil
}

// CreateJob posts a job under the caller's approved startup
func (s *jobServiceImpl) CreateJob(ctx context.Context, capability *auth.Capability, req *dto.CreateJobRequest) (*models.Job, error) {
	if err := s.authzService.RequireRepresentative(capability); err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:                  uuid.New(),
		CompanyID:           capability.StartupID,
		RoleTitle:           strings.TrimSpace(req.RoleTitle),
		Description:         strings.TrimSpace(req.Description),
		Type:                strings.TrimSpace(req.Type),
		ExternalLink:        trimmedOrNil(req.ExternalLink),
		Location:            trimmedOrNil(req.Location),
		Stipend:             trimmedOrNil(req.Stipend),
		Duration:            trimmedOrNil(req.Duration),
		ApplicationDeadline: req.ApplicationDeadline,
		CreatedAt:           s.now(),
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Str("jobID", job.ID.String()).Str("startupID", job.CompanyID.String()).Msg("Job created")
	return job, nil
}

func validateJob(job *models.Job) error {
	var missing []string
	if job.RoleTitle == "" {
		missing = append(missing, "roleTitle")
	}
	if job.Description == "" {
		missing = append(missing, "description")
	}
	if job.Type == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return apperrors.NewBadRequestError("Missing required fields: " + strings.Join(missing, ", ")).
			WithDetails(map[string]interface{}{"fields": missing})
	}
	return nil
}

func (s *jobServiceImpl) UpdateJob(ctx context.Context, capability *auth.Capability, jobID uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.AuthorizeJobMutation(capability, job.CompanyID); err != nil {
		return nil, err
	}

	if req.RoleTitle != nil {
		job.RoleTitle = strings.TrimSpace(*req.RoleTitle)
	}
	if req.Description != nil {
		job.Description = strings.TrimSpace(*req.Description)
	}
	if req.Type != nil {
		job.Type = strings.TrimSpace(*req.Type)
	}
	if req.ExternalLink != nil {
		job.ExternalLink = trimmedOrNil(req.ExternalLink)
	}
	if req.Location != nil {
		job.Location = trimmedOrNil(req.Location)
	}
	if req.Stipend != nil {
		job.Stipend = trimmedOrNil(req.Stipend)
	}
	if req.Duration != nil {
		job.Duration = trimmedOrNil(req.Duration)
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobServiceImpl) DeleteJob(ctx context.Context, capability *auth.Capability, jobID uuid.UUID) error {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return err
	}
	if err := s.authzService.AuthorizeJobMutation(capability, job.CompanyID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}

	s.logger.Info().Str("jobID", jobID.String()).Msg("Job deleted")
	return nil
}

// Apply records an application. A second application by the same applicant fails with a conflict.
func (s *jobServiceImpl) Apply(ctx context.Context, jobID, applicantID uuid.UUID, req *dto.ApplyRequest) (*models.Application, error) {
	if _, err := s.loadJob(ctx, jobID); err != nil {
		return nil, err
	}

	resumeLink := ""
	if req != nil {
		resumeLink = strings.TrimSpace(req.ResumeLink)
	}
	if resumeLink == "" {
		return nil, apperrors.NewBadRequestError("Resume link is required").WithDetails(map[string]interface{}{"fields": []string{"resumeLink"}})
	}

	application := &models.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		ApplicantID: applicantID,
		ResumeLink:  resumeLink,
		Status:      models.ApplicationStatusApplied,
		SubmittedAt: s.now(),
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info().Str("jobID", jobID.String()).Str("applicantID", applicantID.String()).Msg("Job application submitted")
	return application, nil
}

func (s *jobServiceImpl) ListApplications(ctx context.Context, capability *auth.Capability, jobID uuid.UUID) ([]*models.Application, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.AuthorizeJobRead(capability, job.CompanyID); err != nil {
		return nil, err
	}
	return s.applicationRepo.ListByJob(ctx, jobID)
}

// UpdateApplicationStatus lets the owning startup's representative move an application along
func (s *jobServiceImpl) UpdateApplicationStatus(ctx context.Context, capability *auth.Capability, applicationID uuid.UUID, status string) (*models.Application, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.NewBadRequestError("Status is required")
	}

	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if application == nil {
		return nil, apperrors.ErrApplicationNotFound
	}

	job, err := s.loadJob(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.AuthorizeJobMutation(capability, job.CompanyID); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	application.Status = status
	return application, nil
}

func (s *jobServiceImpl) ListMyApplications(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	return s.applicationRepo.ListByApplicant(ctx, userID)
}
