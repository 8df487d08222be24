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

// ApplicationUniqueConstraint guards one application per (job, applicant)
const ApplicationUniqueConstraint = "applications_job_applicant_key"

var applicationColumns = []string{"id", "job_id", "applicant_id", "resume_link", "status", "submitted_at"}

// ApplicationRepository handles database operations for job applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.ResumeLink, &a.Status, &a.SubmittedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an application; a second one for the same pair yields apperrors.ErrAlreadyApplied
func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	application.ID = idOrNew(application.ID)
	application.SubmittedAt = timestampOrNow(application.SubmittedAt)

	sql, args, err := psql.Insert("applications").
		Columns(applicationColumns...).
		Values(application.ID, application.JobID, application.ApplicantID, application.ResumeLink,
			application.Status, application.SubmittedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, ApplicationUniqueConstraint) {
			return apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by ID. Returns nil, nil when absent.
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	sql, args, err := psql.Select(applicationColumns...).
		From("applications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	application, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting application %s: %w", id, err)
	}
	return application, nil
}

// ListByJob returns the applications of a job, newest first
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	return r.list(ctx, squirrel.Eq{"job_id": jobID})
}

// ListByApplicant returns the applications a user submitted, newest first
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*models.Application, error) {
	return r.list(ctx, squirrel.Eq{"applicant_id": applicantID})
}

func (r *ApplicationRepository) list(ctx context.Context, where squirrel.Eq) ([]*models.Application, error) {
	sql, args, err := psql.Select(applicationColumns...).
		From("applications").
		Where(where).
		OrderBy("submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	applications := []*models.Application{}
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		applications = append(applications, application)
	}
	return applications, rows.Err()
}

// UpdateStatus sets the reviewer-defined status of an application
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	sql, args, err := psql.Update("applications").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating application %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
