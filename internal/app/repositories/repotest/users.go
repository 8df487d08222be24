// Package repotest provides in-memory repositories that honour the same
// uniqueness rules as the Postgres schema.
package repotest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/repositories"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// ErrInjected is returned by fakes configured to fail
var ErrInjected = errors.New("injected store failure")

// UserRepository is an in-memory repositories.IUserRepository
type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User

	// FailIncrement makes IncrementProjectsJoined fail
	FailIncrement bool
}

var _ repositories.IUserRepository = (*UserRepository)(nil)

// NewUserRepository creates an empty UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[uuid.UUID]*models.User{}}
}

// Put stores a copy of user, overwriting any existing row
func (r *UserRepository) Put(user models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	r.users[user.ID] = &user
	cp := user
	return &cp
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	if _, ok := r.users[user.ID]; !ok {
		cp := *user
		if cp.Role == "" {
			cp.Role = models.RoleStudent
		}
		now := time.Now().UTC()
		cp.CreatedAt, cp.UpdatedAt = now, now
		r.users[user.ID] = &cp
	}
	r.mu.Unlock()
	return r.GetByID(ctx, user.ID)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.User, error) {
	r.mu.Lock()
	u, ok := r.users[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperrors.ErrUserNotFound
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.College != nil {
		u.College = update.College
	}
	if update.Course != nil {
		u.Course = update.Course
	}
	if update.Branch != nil {
		u.Branch = update.Branch
	}
	if update.Year != nil {
		u.Year = update.Year
	}
	if update.Skills != nil {
		u.Skills = update.Skills
	}
	if update.About != nil {
		u.About = update.About
	}
	u.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdateAdminFields(ctx context.Context, id uuid.UUID, adminAbout *string, adminSkills []string) (*models.User, error) {
	r.mu.Lock()
	u, ok := r.users[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperrors.ErrUserNotFound
	}
	if adminAbout != nil {
		u.AdminAbout = adminAbout
	}
	if adminSkills != nil {
		u.AdminSkills = adminSkills
	}
	r.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdateRole(_ context.Context, id uuid.UUID, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *UserRepository) IncrementProjectsJoined(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailIncrement {
		return ErrInjected
	}
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.ProjectsJoined++
	return nil
}

// SetTrustScore writes a score directly, as the endorsement store does inside its transaction
func (r *UserRepository) SetTrustScore(id uuid.UUID, score float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.TrustScore = score
	return nil
}
