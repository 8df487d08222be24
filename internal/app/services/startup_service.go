package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/repositories"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// ReapplyCooldown is how long a rejected founder waits before submitting again
const ReapplyCooldown = 5 * 24 * time.Hour

// StartupService defines the startup application lifecycle
type StartupService interface {
	Submit(ctx context.Context, userID uuid.UUID, req *dto.SubmitStartupRequest) (*models.Startup, error)
	Approve(ctx context.Context, startupID uuid.UUID) (*models.Startup, error)
	Reject(ctx context.Context, startupID uuid.UUID, reason string) (*models.Startup, error)
	GetMine(ctx context.Context, userID uuid.UUID) (*dto.MyStartupView, error)
	Withdraw(ctx context.Context, userID uuid.UUID) error
	ListForReview(ctx context.Context, status *models.StartupStatus) ([]*models.Startup, error)
	Get(ctx context.Context, startupID uuid.UUID) (*models.Startup, error)
}

// startupServiceImpl implements StartupService
type startupServiceImpl struct {
	startupRepo repositories.IStartupRepository
	userRepo    repositories.IUserRepository
	now         Clock
	logger      zerolog.Logger
}

// NewStartupService creates a new StartupService
func NewStartupService(
	startupRepo repositories.IStartupRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) StartupService {
	return &startupServiceImpl{
		startupRepo: startupRepo,
		userRepo:    userRepo,
		now:         systemClock,
		logger:      logger,
	}
}

// NewCooldownError builds the forbidden error returned while a rejection cooldown is running.
// Its details carry the rejection metadata so clients can show the retry date.
func NewCooldownError(rejected *models.Startup) *apperrors.CustomError {
	details := map[string]interface{}{
		"status":        rejected.Status,
		"reapply_after": rejected.ReapplyAfter,
	}
	if rejected.RejectionReason != nil {
		details["rejection_reason"] = *rejected.RejectionReason
	}
	return apperrors.NewForbiddenError(
		fmt.Sprintf("Your last application was rejected. You can reapply after %s", rejected.ReapplyAfter.Format(time.RFC3339)),
	).WithDetails(details)
}

// Submit creates a new PENDING startup for a student. Checks run in order:
// role, open application, cooldown, then the submitted fields.
func (s *startupServiceImpl) Submit(ctx context.Context, userID uuid.UUID, req *dto.SubmitStartupRequest) (*models.Startup, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Role != models.RoleStudent {
		return nil, apperrors.ErrStudentsOnly
	}

	latest, err := s.startupRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest startup: %w", err)
	}
	now := s.now()
	if latest != nil {
		if latest.Status.Open() {
			return nil, apperrors.ErrStartupInProgress
		}
		if latest.CoolingDown(now) {
			return nil, NewCooldownError(latest)
		}
	}

	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	stage := models.NormalizeStage(req.Stage)
	if !stage.Known() {
		s.logger.Warn().Str("userID", userID.String()).Str("stage", string(stage)).Msg("Accepting startup with unrecognized stage")
	}

	startup := &models.Startup{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             strings.TrimSpace(req.Name),
		ProblemStatement: strings.TrimSpace(req.ProblemStatement),
		Domain:           strings.TrimSpace(req.Domain),
		Stage:            stage,
		Description:      trimmedOrNil(req.Description),
		Website:          trimmedOrNil(req.Website),
		HeadName:         strings.TrimSpace(req.HeadName),
		HeadEmail:        strings.TrimSpace(req.HeadEmail),
		IsActive:         true,
		Status:           models.StartupPending,
		CreatedAt:        now,
	}

	if err := s.startupRepo.Create(ctx, startup); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", userID.String()).Str("startupID", startup.ID.String()).Msg("Startup submitted for review")
	return startup, nil
}

func validateSubmission(req *dto.SubmitStartupRequest) error {
	if req == nil {
		return apperrors.NewBadRequestError("Request body is required")
	}

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"problemStatement", req.ProblemStatement},
		{"domain", req.Domain},
		{"stage", req.Stage},
		{"headName", req.HeadName},
		{"headEmail", req.HeadEmail},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewBadRequestError("Missing required fields: " + strings.Join(missing, ", ")).
			WithDetails(map[string]interface{}{"fields": missing})
	}

	if !req.IsActive {
		return apperrors.NewBadRequestError("Startup must be marked active before it can be submitted for review").
			WithDetails(map[string]interface{}{"fields": []string{"isActive"}})
	}
	return nil
}

func (s *startupServiceImpl) mustGet(ctx context.Context, startupID uuid.UUID) (*models.Startup, error) {
	startup, err := s.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load startup: %w", err)
	}
	if startup == nil {
		return nil, apperrors.ErrStartupNotFound
	}
	return startup, nil
}

// Approve marks the startup APPROVED and clears any earlier rejection data
func (s *startupServiceImpl) Approve(ctx context.Context, startupID uuid.UUID) (*models.Startup, error) {
	startup, err := s.mustGet(ctx, startupID)
	if err != nil {
		return nil, err
	}
	// Only the founder's latest record counts; approving an older one would strand an open row.
	latest, err := s.startupRepo.GetLatestByUserID(ctx, startup.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest startup: %w", err)
	}
	if latest == nil || latest.ID != startup.ID {
		return nil, apperrors.NewConflictError("Only the founder's latest startup application can be approved").
			WithDetails(map[string]interface{}{"status": startup.Status})
	}

	reviewedAt := s.now()
	startup.Status = models.StartupApproved
	startup.ReviewedAt = &reviewedAt
	startup.RejectionReason = nil
	startup.ReapplyAfter = nil

	if err := s.startupRepo.UpdateReview(ctx, startup); err != nil {
		return nil, err
	}

	s.logger.Info().Str("startupID", startupID.String()).Msg("Startup approved")
	return startup, nil
}

// Reject marks a pending startup REJECTED and starts the reapply cooldown from the review time
func (s *startupServiceImpl) Reject(ctx context.Context, startupID uuid.UUID, reason string) (*models.Startup, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewBadRequestError("Rejection reason is required")
	}

	startup, err := s.mustGet(ctx, startupID)
	if err != nil {
		return nil, err
	}
	// Approval is final: there is no APPROVED -> REJECTED transition.
	if startup.Status != models.StartupPending {
		return nil, apperrors.NewConflictError("Only pending startups can be rejected").
			WithDetails(map[string]interface{}{"status": startup.Status})
	}

	reviewedAt := s.now()
	reapplyAfter := reviewedAt.Add(ReapplyCooldown)
	startup.Status = models.StartupRejected
	startup.ReviewedAt = &reviewedAt
	startup.RejectionReason = &reason
	startup.ReapplyAfter = &reapplyAfter

	if err := s.startupRepo.UpdateReview(ctx, startup); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("startupID", startupID.String()).
		Time("reapplyAfter", reapplyAfter).
		Msg("Startup rejected")
	return startup, nil
}

// GetMine maps the caller's latest startup to the founder-facing view, or nil when none exists
func (s *startupServiceImpl) GetMine(ctx context.Context, userID uuid.UUID) (*dto.MyStartupView, error) {
	latest, err := s.startupRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest startup: %w", err)
	}
	if latest == nil {
		return nil, nil
	}

	view := &dto.MyStartupView{Status: latest.Status}
	switch latest.Status {
	case models.StartupPending:
		view.Message = "Your startup application is under review"
	case models.StartupRejected:
		view.Message = "Your startup application was rejected"
		view.RejectionReason = latest.RejectionReason
		view.ReapplyAfter = latest.ReapplyAfter
	default:
		view.Startup = latest
	}
	return view, nil
}

// Withdraw removes the caller's latest startup; a caller without one gets a no-op
func (s *startupServiceImpl) Withdraw(ctx context.Context, userID uuid.UUID) error {
	deleted, err := s.startupRepo.DeleteLatestByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if deleted {
		s.logger.Info().Str("userID", userID.String()).Msg("Startup withdrawn")
	}
	return nil
}

func (s *startupServiceImpl) ListForReview(ctx context.Context, status *models.StartupStatus) ([]*models.Startup, error) {
	if status != nil && !status.Valid() {
		return nil, apperrors.NewBadRequestError("Status must be one of PENDING, APPROVED, REJECTED")
	}
	return s.startupRepo.List(ctx, status)
}

func (s *startupServiceImpl) Get(ctx context.Context, startupID uuid.UUID) (*models.Startup, error) {
	return s.mustGet(ctx, startupID)
}

// trimmedOrNil drops optional strings that are blank after trimming
func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
