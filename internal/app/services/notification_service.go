package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/repositories"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// anonymousActor stands in for an actor whose name cannot be resolved
const anonymousActor = "Someone"

// NotificationService defines pull-only notification operations
type NotificationService interface {
	NotifyCollaborationRequest(ctx context.Context, ownerID, actorID, postID uuid.UUID, postTitle string) (*models.Notification, error)
	ListMine(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo repositories.INotificationRepository
	userRepo         repositories.IUserRepository
	now              Clock
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.INotificationRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		now:              systemClock,
		logger:           logger,
	}
}

// CollaborationMessage renders the notice shown to a post author when someone joins
func CollaborationMessage(actorName, postTitle string) string {
	return fmt.Sprintf("%s wants to build with you on \"%s\"", actorName, postTitle)
}

// NotifyCollaborationRequest tells a post's owner that actorID joined it.
// Nothing is produced when the owner joins their own post. Storage errors are returned.
func (s *notificationServiceImpl) NotifyCollaborationRequest(ctx context.Context, ownerID, actorID, postID uuid.UUID, postTitle string) (*models.Notification, error) {
	if ownerID == actorID {
		return nil, nil
	}

	notification := &models.Notification{
		ID:          uuid.New(),
		RecipientID: ownerID,
		ActorID:     actorID,
		Type:        models.NotificationTypeLetsBuild,
		PostID:      &postID,
		Message:     CollaborationMessage(s.actorName(ctx, actorID), postTitle),
		CreatedAt:   s.now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to store collaboration notification: %w", err)
	}
	return notification, nil
}

func (s *notificationServiceImpl) actorName(ctx context.Context, actorID uuid.UUID) string {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		s.logger.Warn().Err(err).Str("actorID", actorID.String()).Msg("Could not resolve actor name for notification")
		return anonymousActor
	}
	if actor == nil || strings.TrimSpace(actor.FullName) == "" {
		return anonymousActor
	}
	return strings.TrimSpace(actor.FullName)
}

func (s *notificationServiceImpl) ListMine(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.ListByRecipient(ctx, userID, unreadOnly)
}

// MarkRead stamps read_at on a notification owned by userID
func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification: %w", err)
	}
	if notification == nil {
		return nil, apperrors.ErrNotificationNotFound
	}
	if notification.RecipientID != userID {
		return nil, apperrors.NewForbiddenError("This notification belongs to another user")
	}
	if notification.ReadAt != nil {
		return notification, nil
	}

	readAt := s.now()
	if err := s.notificationRepo.MarkRead(ctx, notificationID, readAt); err != nil {
		return nil, err
	}
	notification.ReadAt = &readAt
	return notification, nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID, s.now())
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
