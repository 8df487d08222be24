package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/launchpad/internal/app/models"
)

var userColumns = []string{
	"id", "email", "full_name", "role", "college", "course", "branch", "year",
	"skills", "about", "admin_about", "admin_skills", "trust_score", "projects_joined",
	"created_at", "updated_at",
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.College, &u.Course, &u.Branch, &u.Year,
		&u.Skills, &u.About, &u.AdminAbout, &u.AdminSkills, &u.TrustScore, &u.ProjectsJoined,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID. Returns nil, nil when no row exists.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user %s: %w", id, err)
	}
	return user, nil
}

// EnsureUser inserts the user if absent and returns the stored row
func (r *UserRepository) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	role := user.Role
	if role == "" {
		role = models.RoleStudent
	}
	now := time.Now().UTC()

	sql, args, err := psql.Insert("users").
		Columns("id", "email", "full_name", "role", "created_at", "updated_at").
		Values(user.ID, user.Email, user.FullName, role, now, now).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("error ensuring user %s: %w", user.ID, err)
	}

	stored, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("user %s missing after insert", user.ID)
	}
	return stored, nil
}

// UpdateProfile applies the non-nil fields of update and returns the updated row
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.User, error) {
	query := psql.Update("users").
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns))

	if update.FullName != nil {
		query = query.Set("full_name", *update.FullName)
	}
	if update.College != nil {
		query = query.Set("college", *update.College)
	}
	if update.Course != nil {
		query = query.Set("course", *update.Course)
	}
	if update.Branch != nil {
		query = query.Set("branch", *update.Branch)
	}
	if update.Year != nil {
		query = query.Set("year", *update.Year)
	}
	if update.Skills != nil {
		query = query.Set("skills", update.Skills)
	}
	if update.About != nil {
		query = query.Set("about", *update.About)
	}

	return r.updateReturning(ctx, id, query)
}

// UpdateAdminFields sets admin_about and admin_skills
func (r *UserRepository) UpdateAdminFields(ctx context.Context, id uuid.UUID, adminAbout *string, adminSkills []string) (*models.User, error) {
	query := psql.Update("users").
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns))

	if adminAbout != nil {
		query = query.Set("admin_about", *adminAbout)
	}
	if adminSkills != nil {
		query = query.Set("admin_skills", adminSkills)
	}

	return r.updateReturning(ctx, id, query)
}

func (r *UserRepository) updateReturning(ctx context.Context, id uuid.UUID, query squirrel.UpdateBuilder) (*models.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating user %s: %w", id, err)
	}
	return user, nil
}

// UpdateRole changes the user's role
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	sql, args, err := psql.Update("users").
		Set("role", role).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating role for user %s: %w", id, err)
	}
	return nil
}

// IncrementProjectsJoined bumps the projects_joined counter by one
func (r *UserRepository) IncrementProjectsJoined(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Update("users").
		Set("projects_joined", squirrel.Expr("projects_joined + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error incrementing projects for user %s: %w", id, err)
	}
	return nil
}
