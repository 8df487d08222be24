package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/repositories"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// EndorsementRepository is an in-memory repositories.IEndorsementRepository.
// Trust scores are written onto the shared UserRepository.
type EndorsementRepository struct {
	mu           sync.Mutex
	endorsements []*models.Endorsement
	users        *UserRepository

	// FailRecompute makes RecomputeTrustScore fail
	FailRecompute bool
}

var _ repositories.IEndorsementRepository = (*EndorsementRepository)(nil)

// NewEndorsementRepository creates an EndorsementRepository backed by users
func NewEndorsementRepository(users *UserRepository) *EndorsementRepository {
	return &EndorsementRepository{users: users}
}

func (r *EndorsementRepository) Create(ctx context.Context, endorsement *models.Endorsement) error {
	if endorsement.FromUserID == endorsement.ToUserID {
		return apperrors.NewBadRequestError("You cannot endorse yourself")
	}
	if to, _ := r.users.GetByID(ctx, endorsement.ToUserID); to == nil {
		return apperrors.ErrUserNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if endorsement.ID == uuid.Nil {
		endorsement.ID = uuid.New()
	}
	if endorsement.CreatedAt.IsZero() {
		endorsement.CreatedAt = time.Now().UTC()
	}
	cp := *endorsement
	r.endorsements = append(r.endorsements, &cp)
	return nil
}

func (r *EndorsementRepository) ListByRecipient(_ context.Context, userID uuid.UUID) ([]*models.Endorsement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Endorsement{}
	for _, e := range r.endorsements {
		if e.ToUserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

// RecomputeTrustScore holds the repository lock for the whole read-compute-write, standing in for the row lock
func (r *EndorsementRepository) RecomputeTrustScore(ctx context.Context, userID uuid.UUID, compute repositories.TrustScoreFunc) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailRecompute {
		return 0, ErrInjected
	}

	user, _ := r.users.GetByID(ctx, userID)
	if user == nil {
		return 0, apperrors.ErrUserNotFound
	}

	var ratings []float64
	for _, e := range r.endorsements {
		if e.ToUserID == userID {
			ratings = append(ratings, e.Rating)
		}
	}

	score := compute(ratings, user.ProjectsJoined)
	if err := r.users.SetTrustScore(userID, score); err != nil {
		return 0, err
	}
	return score, nil
}

// Len returns the number of stored endorsements
func (r *EndorsementRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.endorsements)
}

// NotificationRepository is an in-memory repositories.INotificationRepository
type NotificationRepository struct {
	mu            sync.Mutex
	notifications []*models.Notification

	// FailCreate makes Create fail
	FailCreate bool
}

var _ repositories.INotificationRepository = (*NotificationRepository)(nil)

// NewNotificationRepository creates an empty NotificationRepository
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreate {
		return ErrInjected
	}
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	cp := *notification
	r.notifications = append(r.notifications, &cp)
	return nil
}

func (r *NotificationRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *NotificationRepository) ListByRecipient(_ context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Notification{}
	for _, n := range r.notifications {
		if n.RecipientID != recipientID || (unreadOnly && n.ReadAt != nil) {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	unread, _ := r.ListByRecipient(ctx, recipientID, true)
	return len(unread), nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			if n.ReadAt == nil {
				t := at
				n.ReadAt = &t
			}
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, recipientID uuid.UUID, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.notifications {
		if item.RecipientID == recipientID && item.ReadAt == nil {
			t := at
			item.ReadAt = &t
			n++
		}
	}
	return n, nil
}

// All returns every stored notification
func (r *NotificationRepository) All() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, *n)
	}
	return out
}

// PostRepository is an in-memory repositories.IPostRepository
type PostRepository struct {
	mu      sync.Mutex
	posts   map[uuid.UUID]*models.Post
	members map[uuid.UUID]map[uuid.UUID]struct{}
}

var _ repositories.IPostRepository = (*PostRepository)(nil)

// NewPostRepository creates an empty PostRepository
func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:   map[uuid.UUID]*models.Post{},
		members: map[uuid.UUID]map[uuid.UUID]struct{}{},
	}
}

func (r *PostRepository) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *PostRepository) AddMember(_ context.Context, postID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[postID]; !ok {
		return false, apperrors.ErrPostNotFound
	}
	members, ok := r.members[postID]
	if !ok {
		members = map[uuid.UUID]struct{}{}
		r.members[postID] = members
	}
	if _, exists := members[userID]; exists {
		return false, nil
	}
	members[userID] = struct{}{}
	return true, nil
}

func (r *PostRepository) RemoveMember(_ context.Context, postID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members[postID], userID)
	return nil
}

// IsMember reports whether userID belongs to postID
func (r *PostRepository) IsMember(postID, userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[postID][userID]
	return ok
}
