package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/repositories"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// PostService defines collaboration post operations
type PostService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error)
	Join(ctx context.Context, postID, userID uuid.UUID) (*dto.JoinPostResponse, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo            repositories.IPostRepository
	userRepo            repositories.IUserRepository
	notificationService NotificationService
	now                 Clock
	logger              zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.IPostRepository,
	userRepo repositories.IUserRepository,
	notificationService NotificationService,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:            postRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		now:                 systemClock,
		logger:              logger,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewBadRequestError("Title is required")
	}

	post := &models.Post{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Join adds userID to the post. Joining again is a no-op. The author is notified of a new
// member; if that notice cannot be stored the membership is undone and the join fails.
func (s *postServiceImpl) Join(ctx context.Context, postID, userID uuid.UUID) (*dto.JoinPostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, apperrors.ErrPostNotFound
	}

	added, err := s.postRepo.AddMember(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		return &dto.JoinPostResponse{PostID: postID, Joined: false}, nil
	}

	if _, err := s.notificationService.NotifyCollaborationRequest(ctx, post.AuthorID, userID, postID, post.Title); err != nil {
		if rmErr := s.postRepo.RemoveMember(ctx, postID, userID); rmErr != nil {
			s.logger.Error().Err(rmErr).
				Str("postID", postID.String()).
				Str("userID", userID.String()).
				Msg("Failed to undo membership after notification failure")
		}
		return nil, err
	}

	if err := s.userRepo.IncrementProjectsJoined(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to increment projects joined")
	}

	return &dto.JoinPostResponse{PostID: postID, Joined: true}, nil
}
