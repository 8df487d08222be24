package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/repositories"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

const (
	// MaxTrustScore is the upper bound of a trust score
	MaxTrustScore = 5.0
	// MaxRating is the highest rating one endorsement may carry
	MaxRating = 5.0
	// ProjectWeight is the score added per joined project
	ProjectWeight = 0.1
)

// ComputeTrustScore is the mean received rating plus ProjectWeight per joined project,
// clamped to [0, MaxTrustScore] and rounded to one decimal.
func ComputeTrustScore(ratings []float64, projectsJoined int) float64 {
	var mean float64
	if len(ratings) > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r
		}
		mean = sum / float64(len(ratings))
	}

	score := mean + ProjectWeight*float64(projectsJoined)
	score = math.Max(0, math.Min(MaxTrustScore, score))
	return math.Round(score*10) / 10
}

// TrustService defines endorsement and trust score operations
type TrustService interface {
	Endorse(ctx context.Context, fromUserID, toUserID uuid.UUID, rating float64) (*dto.EndorsementResponse, error)
	Recompute(ctx context.Context, userID uuid.UUID) (float64, error)
	ListReceived(ctx context.Context, userID uuid.UUID) ([]*models.Endorsement, error)
}

// trustServiceImpl implements TrustService
type trustServiceImpl struct {
	endorsementRepo repositories.IEndorsementRepository
	userRepo        repositories.IUserRepository
	now             Clock
	logger          zerolog.Logger
}

// NewTrustService creates a new TrustService
func NewTrustService(
	endorsementRepo repositories.IEndorsementRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) TrustService {
	return &trustServiceImpl{
		endorsementRepo: endorsementRepo,
		userRepo:        userRepo,
		now:             systemClock,
		logger:          logger,
	}
}

// Endorse stores a rating and then recomputes the recipient's score.
// A failed recompute is logged and leaves TrustScore unset in the response.
func (s *trustServiceImpl) Endorse(ctx context.Context, fromUserID, toUserID uuid.UUID, rating float64) (*dto.EndorsementResponse, error) {
	if fromUserID == uuid.Nil || toUserID == uuid.Nil {
		return nil, apperrors.NewBadRequestError("Both the endorsing and the endorsed user are required")
	}
	if rating == 0 || math.IsNaN(rating) {
		return nil, apperrors.NewBadRequestError("Rating is required")
	}
	if rating < 0 || rating > MaxRating {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Rating must be greater than 0 and at most %.0f", MaxRating)).
			WithDetails(map[string]interface{}{"rating": rating})
	}
	if fromUserID == toUserID {
		return nil, apperrors.NewBadRequestError("You cannot endorse yourself")
	}

	target, err := s.userRepo.GetByID(ctx, toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load endorsed user: %w", err)
	}
	if target == nil {
		return nil, apperrors.ErrUserNotFound
	}

	endorsement := &models.Endorsement{
		ID:         uuid.New(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Rating:     rating,
		CreatedAt:  s.now(),
	}
	if err := s.endorsementRepo.Create(ctx, endorsement); err != nil {
		return nil, err
	}

	resp := &dto.EndorsementResponse{Endorsement: endorsement}
	score, err := s.Recompute(ctx, toUserID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("userID", toUserID.String()).
			Str("endorsementID", endorsement.ID.String()).
			Msg("Failed to recompute trust score after endorsement")
		return resp, nil
	}
	resp.TrustScore = &score
	return resp, nil
}

// Recompute derives and stores a user's score inside one store transaction
func (s *trustServiceImpl) Recompute(ctx context.Context, userID uuid.UUID) (float64, error) {
	score, err := s.endorsementRepo.RecomputeTrustScore(ctx, userID, ComputeTrustScore)
	if err != nil {
		return 0, err
	}
	s.logger.Debug().Str("userID", userID.String()).Float64("trustScore", score).Msg("Trust score recomputed")
	return score, nil
}

func (s *trustServiceImpl) ListReceived(ctx context.Context, userID uuid.UUID) ([]*models.Endorsement, error) {
	return s.endorsementRepo.ListByRecipient(ctx, userID)
}
