package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/repositories"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	pkgauth "github.com/yigit/launchpad/internal/pkg/auth"
)

// CapabilityKind is the hiring scope granted to a caller
type CapabilityKind string

const (
	CapabilityNone            CapabilityKind = "none"
	CapabilityAdmin           CapabilityKind = "admin"
	CapabilityApprovedStartup CapabilityKind = "approved_startup"
)

// Capability is the per-request authorization decision for one caller.
// StartupID is set only for CapabilityApprovedStartup.
type Capability struct {
	UserID    uuid.UUID      `json:"userId"`
	Role      models.Role    `json:"role"`
	Kind      CapabilityKind `json:"kind"`
	StartupID uuid.UUID      `json:"startupId,omitempty"`
}

// IsAdmin reports whether the caller holds admin capability
func (c *Capability) IsAdmin() bool {
	return c != nil && c.Kind == CapabilityAdmin
}

// IsRepresentative reports whether the caller represents an approved startup
func (c *Capability) IsRepresentative() bool {
	return c != nil && c.Kind == CapabilityApprovedStartup && c.StartupID != uuid.Nil
}

// Owns reports whether companyID is the caller's approved startup
func (c *Capability) Owns(companyID uuid.UUID) bool {
	return c.IsRepresentative() && c.StartupID == companyID
}

// Policy is the fixed allow-list consulted for role transitions. uuid.Nil disables an entry.
type Policy struct {
	PromotableAdminID     uuid.UUID
	AdminPassphraseHash   string
	RoleReversionExemptID uuid.UUID
}

// AuthorizationService derives capabilities and authorizes hiring and profile operations
type AuthorizationService struct {
	userRepo    repositories.IUserRepository
	startupRepo repositories.IStartupRepository
	policy      Policy
	logger      zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	userRepo repositories.IUserRepository,
	startupRepo repositories.IStartupRepository,
	policy Policy,
	logger zerolog.Logger,
) *AuthorizationService {
	return &AuthorizationService{
		userRepo:    userRepo,
		startupRepo: startupRepo,
		policy:      policy,
		logger:      logger,
	}
}

// Resolve computes the caller's capability from the stored role and latest startup
func (s *AuthorizationService) Resolve(ctx context.Context, userID uuid.UUID) (*Capability, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for capability: %w", err)
	}

	capability := &Capability{UserID: userID, Role: models.RoleStudent, Kind: CapabilityNone}
	if user == nil {
		// Not provisioned yet: an unknown caller holds no hiring scope.
		s.logger.Debug().Str("userID", userID.String()).Msg("Resolving capability for unknown user")
		return capability, nil
	}

	capability.Role = user.Role
	if user.IsAdmin() {
		capability.Kind = CapabilityAdmin
		return capability, nil
	}

	latest, err := s.startupRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest startup for capability: %w", err)
	}
	if latest != nil && latest.Status == models.StartupApproved {
		capability.Kind = CapabilityApprovedStartup
		capability.StartupID = latest.ID
	}
	return capability, nil
}

// RequireAdmin fails with a forbidden error unless the caller is an admin
func (s *AuthorizationService) RequireAdmin(capability *Capability) error {
	if !capability.IsAdmin() {
		return apperrors.NewForbiddenError("Admin access required")
	}
	return nil
}

// RequireRepresentative fails unless the caller represents an approved startup.
// Admins are read-only for hiring data and are refused here as well.
func (s *AuthorizationService) RequireRepresentative(capability *Capability) error {
	if capability.IsAdmin() {
		return apperrors.ErrAdminReadOnlyHiring
	}
	if !capability.IsRepresentative() {
		return apperrors.ErrNotApprovedStartup
	}
	return nil
}

// AuthorizeJobMutation allows create, update and delete only for the owning representative
func (s *AuthorizationService) AuthorizeJobMutation(capability *Capability, companyID uuid.UUID) error {
	if err := s.RequireRepresentative(capability); err != nil {
		return err
	}
	if capability.StartupID != companyID {
		return apperrors.NewForbiddenError("This job belongs to another startup")
	}
	return nil
}

// AuthorizeJobRead allows admins to read any job and representatives their own
func (s *AuthorizationService) AuthorizeJobRead(capability *Capability, companyID uuid.UUID) error {
	if capability.IsAdmin() {
		return nil
	}
	if !capability.IsRepresentative() {
		return apperrors.ErrNotApprovedStartup
	}
	if capability.StartupID != companyID {
		return apperrors.NewForbiddenError("This job belongs to another startup")
	}
	return nil
}

// AuthorizeAdminFields re-reads the profile so only a currently stored admin may write admin-only fields
func (s *AuthorizationService) AuthorizeAdminFields(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for admin field check: %w", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if !user.IsAdmin() {
		return apperrors.NewForbiddenError("Only admins can update admin fields")
	}
	return nil
}

// AuthorizeRoleChange enforces the role transition rules:
// promotion to admin is open to the single promotable identity presenting the passphrase,
// and reverting from admin to student is open only to the single exempt identity.
func (s *AuthorizationService) AuthorizeRoleChange(ctx context.Context, userID uuid.UUID, target models.Role, passphrase string) error {
	if !target.Valid() {
		return apperrors.NewBadRequestError("Role must be student or admin")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for role change: %w", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if user.Role == target {
		return nil
	}

	switch target {
	case models.RoleAdmin:
		if s.policy.PromotableAdminID == uuid.Nil || userID != s.policy.PromotableAdminID {
			s.logger.Warn().Str("userID", userID.String()).Msg("Rejected admin promotion for identity outside allow-list")
			return apperrors.NewForbiddenError("You are not allowed to become an admin")
		}
		if !pkgauth.CheckPassphrase(s.policy.AdminPassphraseHash, passphrase) {
			return apperrors.NewForbiddenError("Invalid admin passphrase")
		}
	case models.RoleStudent:
		if s.policy.RoleReversionExemptID == uuid.Nil || userID != s.policy.RoleReversionExemptID {
			return apperrors.NewForbiddenError("Admins cannot switch back to student")
		}
	}
	return nil
}
