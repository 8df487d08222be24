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

// StartupRepository is an in-memory repositories.IStartupRepository.
// Create refuses a second open (pending or approved) startup per user.
type StartupRepository struct {
	mu       sync.Mutex
	startups []*models.Startup
}

var _ repositories.IStartupRepository = (*StartupRepository)(nil)

// NewStartupRepository creates an empty StartupRepository
func NewStartupRepository() *StartupRepository {
	return &StartupRepository{}
}

func (r *StartupRepository) openCountLocked(userID uuid.UUID, except uuid.UUID) int {
	n := 0
	for _, s := range r.startups {
		if s.UserID == userID && s.ID != except && s.Status.Open() {
			n++
		}
	}
	return n
}

func (r *StartupRepository) Create(_ context.Context, startup *models.Startup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if startup.Status.Open() && r.openCountLocked(startup.UserID, uuid.Nil) > 0 {
		return apperrors.ErrStartupInProgress
	}
	if startup.ID == uuid.Nil {
		startup.ID = uuid.New()
	}
	if startup.CreatedAt.IsZero() {
		startup.CreatedAt = time.Now().UTC()
	}
	cp := *startup
	r.startups = append(r.startups, &cp)
	return nil
}

func (r *StartupRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Startup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.startups {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *StartupRepository) latestLocked(userID uuid.UUID) (int, *models.Startup) {
	idx := -1
	var latest *models.Startup
	for i, s := range r.startups {
		if s.UserID != userID {
			continue
		}
		// Ties go to the later insert, matching a DESC scan over equal timestamps.
		if latest == nil || !s.CreatedAt.Before(latest.CreatedAt) {
			idx, latest = i, s
		}
	}
	return idx, latest
}

func (r *StartupRepository) GetLatestByUserID(_ context.Context, userID uuid.UUID) (*models.Startup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, latest := r.latestLocked(userID)
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *StartupRepository) List(_ context.Context, status *models.StartupStatus) ([]*models.Startup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Startup{}
	for _, s := range r.startups {
		if status != nil && s.Status != *status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *StartupRepository) UpdateReview(_ context.Context, startup *models.Startup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.startups {
		if s.ID != startup.ID {
			continue
		}
		if startup.Status.Open() && r.openCountLocked(s.UserID, s.ID) > 0 {
			return apperrors.ErrStartupInProgress
		}
		s.Status = startup.Status
		s.ReviewedAt = startup.ReviewedAt
		s.RejectionReason = startup.RejectionReason
		s.ReapplyAfter = startup.ReapplyAfter
		return nil
	}
	return apperrors.ErrStartupNotFound
}

func (r *StartupRepository) DeleteLatestByUserID(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, latest := r.latestLocked(userID)
	if latest == nil {
		return false, nil
	}
	r.startups = append(r.startups[:idx], r.startups[idx+1:]...)
	return true, nil
}

// OpenCount returns how many pending or approved startups userID holds
func (r *StartupRepository) OpenCount(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openCountLocked(userID, uuid.Nil)
}

// Count returns the number of stored startups of userID
func (r *StartupRepository) Count(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.startups {
		if s.UserID == userID {
			n++
		}
	}
	return n
}
