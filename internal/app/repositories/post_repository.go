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

// PostRepository handles database operations for collaboration posts and their members
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	post.ID = idOrNew(post.ID)
	post.CreatedAt = timestampOrNow(post.CreatedAt)

	sql, args, err := psql.Insert("posts").
		Columns("id", "author_id", "title", "description", "created_at").
		Values(post.ID, post.AuthorID, post.Title, post.Description, post.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// GetByID retrieves a post. Returns nil, nil when absent.
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	sql, args, err := psql.Select("id", "author_id", "title", "description", "created_at").
		From("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var post models.Post
	err = r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.AuthorID, &post.Title, &post.Description, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	return &post, nil
}

// AddMember records that a user joined a post. Reports false when the user was already a member.
func (r *PostRepository) AddMember(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	sql, args, err := psql.Insert("post_members").
		Columns("post_id", "user_id").
		Values(postID, userID).
		Suffix("ON CONFLICT (post_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrPostNotFound
		}
		return false, fmt.Errorf("error adding post member: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// RemoveMember deletes a membership row
func (r *PostRepository) RemoveMember(ctx context.Context, postID, userID uuid.UUID) error {
	sql, args, err := psql.Delete("post_members").
		Where(squirrel.Eq{"post_id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error removing post member: %w", err)
	}
	return nil
}
