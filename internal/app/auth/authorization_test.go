package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/launchpad/internal/app/auth"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/repositories/repotest"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

func TestAuthorizationService_Resolve(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUserRepository()
	startups := repotest.NewStartupRepository()
	svc := auth.NewAuthorizationService(users, startups, auth.Policy{}, zerolog.Nop())

	student := users.Put(models.User{ID: uuid.New(), Email: "s@campus.edu", Role: models.RoleStudent})
	admin := users.Put(models.User{ID: uuid.New(), Email: "a@campus.edu", Role: models.RoleAdmin})

	t.Run("unknown user has no capability", func(t *testing.T) {
		capability, err := svc.Resolve(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, auth.CapabilityNone, capability.Kind)
	})

	t.Run("admin", func(t *testing.T) {
		capability, err := svc.Resolve(ctx, admin.ID)
		require.NoError(t, err)
		assert.True(t, capability.IsAdmin())
		assert.False(t, capability.IsRepresentative())
	})

	t.Run("student follows latest startup status", func(t *testing.T) {
		capability, err := svc.Resolve(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, auth.CapabilityNone, capability.Kind)

		pending := &models.Startup{ID: uuid.New(), UserID: student.ID, Status: models.StartupPending}
		require.NoError(t, startups.Create(ctx, pending))
		capability, err = svc.Resolve(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, auth.CapabilityNone, capability.Kind)

		pending.Status = models.StartupApproved
		require.NoError(t, startups.UpdateReview(ctx, pending))
		capability, err = svc.Resolve(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, auth.CapabilityApprovedStartup, capability.Kind)
		assert.Equal(t, pending.ID, capability.StartupID)
		assert.True(t, capability.Owns(pending.ID))
		assert.False(t, capability.Owns(uuid.New()))
	})
}

func TestAuthorizationService_Guards(t *testing.T) {
	svc := auth.NewAuthorizationService(repotest.NewUserRepository(), repotest.NewStartupRepository(), auth.Policy{}, zerolog.Nop())
	company := uuid.New()
	owner := &auth.Capability{Kind: auth.CapabilityApprovedStartup, StartupID: company}
	admin := &auth.Capability{Kind: auth.CapabilityAdmin, Role: models.RoleAdmin}
	none := &auth.Capability{Kind: auth.CapabilityNone}

	assert.NoError(t, svc.RequireAdmin(admin))
	assert.ErrorIs(t, svc.RequireAdmin(owner), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.RequireAdmin(nil), apperrors.ErrPermissionDenied)

	assert.NoError(t, svc.AuthorizeJobMutation(owner, company))
	assert.ErrorIs(t, svc.AuthorizeJobMutation(owner, uuid.New()), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.AuthorizeJobMutation(admin, company), apperrors.ErrAdminReadOnlyHiring)
	assert.ErrorIs(t, svc.AuthorizeJobMutation(none, company), apperrors.ErrNotApprovedStartup)

	assert.NoError(t, svc.AuthorizeJobRead(admin, company))
	assert.NoError(t, svc.AuthorizeJobRead(owner, company))
	assert.ErrorIs(t, svc.AuthorizeJobRead(none, company), apperrors.ErrNotApprovedStartup)
}
