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

// UserService defines profile operations
type UserService interface {
	EnsureUser(ctx context.Context, userID uuid.UUID, email, fullName string) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error)
	UpdateAdminFields(ctx context.Context, userID uuid.UUID, req *dto.UpdateAdminFieldsRequest) (*models.User, error)
	ChangeRole(ctx context.Context, userID uuid.UUID, req *dto.ChangeRoleRequest) (*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo     repositories.IUserRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, authzService *auth.AuthorizationService, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// EnsureUser returns the stored user, creating a student row on first access
func (s *userServiceImpl) EnsureUser(ctx context.Context, userID uuid.UUID, email, fullName string) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, apperrors.NewUnauthorizedError("User identity is missing")
	}

	user, err := s.userRepo.EnsureUser(ctx, &models.User{
		ID:       userID,
		Email:    strings.TrimSpace(email),
		FullName: strings.TrimSpace(fullName),
		Role:     models.RoleStudent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	update := models.ProfileUpdate{
		College: req.College,
		Course:  req.Course,
		Branch:  req.Branch,
		Year:    req.Year,
		About:   req.About,
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, apperrors.NewBadRequestError("Full name cannot be empty")
		}
		update.FullName = &name
	}
	if req.Skills != nil {
		update.Skills = normalizeSkills(req.Skills)
	}

	return requireUser(s.userRepo.UpdateProfile(ctx, userID, update))
}

// UpdateAdminFields writes admin_about and admin_skills after re-checking the stored role
func (s *userServiceImpl) UpdateAdminFields(ctx context.Context, userID uuid.UUID, req *dto.UpdateAdminFieldsRequest) (*models.User, error) {
	if err := s.authzService.AuthorizeAdminFields(ctx, userID); err != nil {
		return nil, err
	}

	var skills []string
	if req.AdminSkills != nil {
		skills = normalizeSkills(req.AdminSkills)
	}
	return requireUser(s.userRepo.UpdateAdminFields(ctx, userID, req.AdminAbout, skills))
}

// requireUser turns a missing row from an update into a not-found error
func requireUser(user *models.User, err error) (*models.User, error) {
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *userServiceImpl) ChangeRole(ctx context.Context, userID uuid.UUID, req *dto.ChangeRoleRequest) (*models.User, error) {
	target := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if err := s.authzService.AuthorizeRoleChange(ctx, userID, target, req.Passphrase); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, userID, target); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", userID.String()).Str("role", string(target)).Msg("User role changed")
	return s.GetProfile(ctx, userID)
}

// normalizeSkills trims entries and drops blanks and duplicates, keeping the first spelling
func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
