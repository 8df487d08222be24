package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/dberrors"
)

// EndorsementNoSelfConstraint is the CHECK forbidding self-endorsement
const EndorsementNoSelfConstraint = "endorsements_no_self"

// EndorsementRatingConstraint is the CHECK bounding a rating to (0, 5]
const EndorsementRatingConstraint = "endorsements_rating_range"

var endorsementColumns = []string{"id", "from_user_id", "to_user_id", "rating", "created_at"}

// EndorsementRepository handles database operations for endorsements and trust scores
type EndorsementRepository struct {
	db *db.PostgresDB
}

// NewEndorsementRepository creates a new EndorsementRepository
func NewEndorsementRepository(database *db.PostgresDB) *EndorsementRepository {
	return &EndorsementRepository{db: database}
}

// Create inserts an endorsement
func (r *EndorsementRepository) Create(ctx context.Context, endorsement *models.Endorsement) error {
	endorsement.ID = idOrNew(endorsement.ID)
	endorsement.CreatedAt = timestampOrNow(endorsement.CreatedAt)

	sql, args, err := psql.Insert("endorsements").
		Columns(endorsementColumns...).
		Values(endorsement.ID, endorsement.FromUserID, endorsement.ToUserID, endorsement.Rating, endorsement.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsCheckViolation(err, EndorsementNoSelfConstraint) {
			return apperrors.NewBadRequestError("You cannot endorse yourself")
		}
		if dberrors.IsCheckViolation(err, EndorsementRatingConstraint) {
			return apperrors.NewBadRequestError("Rating must be greater than 0 and at most 5")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating endorsement: %w", err)
	}
	return nil
}

// ListByRecipient returns the endorsements a user received, newest first
func (r *EndorsementRepository) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*models.Endorsement, error) {
	sql, args, err := psql.Select(endorsementColumns...).
		From("endorsements").
		Where(squirrel.Eq{"to_user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	endorsements := []*models.Endorsement{}
	for rows.Next() {
		var e models.Endorsement
		if err := rows.Scan(&e.ID, &e.FromUserID, &e.ToUserID, &e.Rating, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		endorsements = append(endorsements, &e)
	}
	return endorsements, rows.Err()
}

// RecomputeTrustScore locks the user row, reads every received rating and the
// projects-joined counter, and writes back compute's result in one transaction.
func (r *EndorsementRepository) RecomputeTrustScore(ctx context.Context, userID uuid.UUID, compute TrustScoreFunc) (float64, error) {
	var score float64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		lockSQL, lockArgs, err := psql.Select("projects_joined").
			From("users").
			Where(squirrel.Eq{"id": userID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		var projectsJoined int
		if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&projectsJoined); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error locking user %s: %w", userID, err)
		}

		ratingsSQL, ratingsArgs, err := psql.Select("rating").
			From("endorsements").
			Where(squirrel.Eq{"to_user_id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		rows, err := tx.Query(ctx, ratingsSQL, ratingsArgs...)
		if err != nil {
			return fmt.Errorf("error reading ratings: %w", err)
		}
		ratings, err := pgx.CollectRows(rows, pgx.RowTo[float64])
		if err != nil {
			return fmt.Errorf("error scanning ratings: %w", err)
		}

		score = compute(ratings, projectsJoined)

		updateSQL, updateArgs, err := psql.Update("users").
			Set("trust_score", score).
			Where(squirrel.Eq{"id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
			return fmt.Errorf("error saving trust score: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return score, nil
}
