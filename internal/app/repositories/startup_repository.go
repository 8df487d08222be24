package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/dberrors"
)

// StartupOpenConstraint is the partial unique index allowing one pending or approved startup per user
const StartupOpenConstraint = "startups_one_open_per_user"

var startupColumns = []string{
	"id", "user_id", "name", "problem_statement", "domain", "stage", "description", "website",
	"head_name", "head_email", "is_active", "status", "rejection_reason", "reapply_after",
	"created_at", "reviewed_at",
}

// StartupRepository handles database operations for startup applications
type StartupRepository struct {
	db *pgxpool.Pool
}

// NewStartupRepository creates a new StartupRepository
func NewStartupRepository(db *pgxpool.Pool) *StartupRepository {
	return &StartupRepository{db: db}
}

func scanStartup(row pgx.Row) (*models.Startup, error) {
	var s models.Startup
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.ProblemStatement, &s.Domain, &s.Stage, &s.Description, &s.Website,
		&s.HeadName, &s.HeadEmail, &s.IsActive, &s.Status, &s.RejectionReason, &s.ReapplyAfter,
		&s.CreatedAt, &s.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new startup. The partial unique index turns a concurrent second
// open application into apperrors.ErrStartupInProgress.
func (r *StartupRepository) Create(ctx context.Context, startup *models.Startup) error {
	startup.ID = idOrNew(startup.ID)
	startup.CreatedAt = timestampOrNow(startup.CreatedAt)

	sql, args, err := psql.Insert("startups").
		Columns(startupColumns...).
		Values(
			startup.ID, startup.UserID, startup.Name, startup.ProblemStatement, startup.Domain, startup.Stage,
			startup.Description, startup.Website, startup.HeadName, startup.HeadEmail, startup.IsActive,
			startup.Status, startup.RejectionReason, startup.ReapplyAfter, startup.CreatedAt, startup.ReviewedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, StartupOpenConstraint) {
			return apperrors.ErrStartupInProgress
		}
		return fmt.Errorf("error creating startup: %w", err)
	}
	return nil
}

func (r *StartupRepository) getOne(ctx context.Context, query squirrel.SelectBuilder) (*models.Startup, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	startup, err := scanStartup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting startup: %w", err)
	}
	return startup, nil
}

// GetByID retrieves a startup by ID. Returns nil, nil when absent.
func (r *StartupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Startup, error) {
	return r.getOne(ctx, psql.Select(startupColumns...).
		From("startups").
		Where(squirrel.Eq{"id": id}))
}

// GetLatestByUserID retrieves the most recently created startup of a user
func (r *StartupRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*models.Startup, error) {
	return r.getOne(ctx, psql.Select(startupColumns...).
		From("startups").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(1))
}

// List returns startups newest first, optionally filtered by status
func (r *StartupRepository) List(ctx context.Context, status *models.StartupStatus) ([]*models.Startup, error) {
	query := psql.Select(startupColumns...).
		From("startups").
		OrderBy("created_at DESC")
	if status != nil {
		query = query.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	startups := []*models.Startup{}
	for rows.Next() {
		startup, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		startups = append(startups, startup)
	}
	return startups, rows.Err()
}

// UpdateReview persists the review outcome fields of a startup
func (r *StartupRepository) UpdateReview(ctx context.Context, startup *models.Startup) error {
	sql, args, err := psql.Update("startups").
		Set("status", startup.Status).
		Set("reviewed_at", startup.ReviewedAt).
		Set("rejection_reason", startup.RejectionReason).
		Set("reapply_after", startup.ReapplyAfter).
		Where(squirrel.Eq{"id": startup.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, StartupOpenConstraint) {
			return apperrors.ErrStartupInProgress
		}
		return fmt.Errorf("error updating startup %s: %w", startup.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStartupNotFound
	}
	return nil
}

// DeleteLatestByUserID removes the user's most recent startup. Reports whether a row was deleted.
func (r *StartupRepository) DeleteLatestByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	latest := psql.Select("id").
		From("startups").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(1)

	sql, args, err := psql.Delete("startups").
		Where(squirrel.Expr("id = (?)", latest)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting latest startup of user %s: %w", userID, err)
	}
	return result.RowsAffected() > 0, nil
}
