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
)

var jobColumns = []string{
	"id", "company_id", "role_title", "description", "type", "external_link", "location",
	"stipend", "duration", "application_deadline", "created_at",
}

// JobRepository handles database operations for jobs
type JobRepository struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.RoleTitle, &j.Description, &j.Type, &j.ExternalLink, &j.Location,
		&j.Stipend, &j.Duration, &j.ApplicationDeadline, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create inserts a new job
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	job.ID = idOrNew(job.ID)
	job.CreatedAt = timestampOrNow(job.CreatedAt)

	sql, args, err := psql.Insert("jobs").
		Columns(jobColumns...).
		Values(
			job.ID, job.CompanyID, job.RoleTitle, job.Description, job.Type, job.ExternalLink, job.Location,
			job.Stipend, job.Duration, job.ApplicationDeadline, job.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by ID. Returns nil, nil when absent.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	sql, args, err := psql.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	job, err := scanJob(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting job %s: %w", id, err)
	}
	return job, nil
}

// List returns jobs newest first; a nil companyID lists every startup's jobs
func (r *JobRepository) List(ctx context.Context, companyID *uuid.UUID) ([]*models.Job, error) {
	query := psql.Select(jobColumns...).
		From("jobs").
		OrderBy("created_at DESC")
	if companyID != nil {
		query = query.Where(squirrel.Eq{"company_id": *companyID})
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

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Update overwrites the mutable fields of a job
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	sql, args, err := psql.Update("jobs").
		Set("role_title", job.RoleTitle).
		Set("description", job.Description).
		Set("type", job.Type).
		Set("external_link", job.ExternalLink).
		Set("location", job.Location).
		Set("stipend", job.Stipend).
		Set("duration", job.Duration).
		Set("application_deadline", job.ApplicationDeadline).
		Where(squirrel.Eq{"id": job.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating job %s: %w", job.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Delete removes a job and, through the foreign key, its applications
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Delete("jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting job %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}
