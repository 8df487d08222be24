package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/launchpad/internal/app/auth"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/repositories/repotest"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

func newUserFixture(t *testing.T, policy auth.Policy) (UserService, *repotest.UserRepository) {
	t.Helper()
	users := repotest.NewUserRepository()
	authz := auth.NewAuthorizationService(users, repotest.NewStartupRepository(), policy, zerolog.Nop())
	return NewUserService(users, authz, zerolog.Nop()), users
}

func TestUserService_EnsureUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture(t, auth.Policy{})
	id := uuid.New()

	created, err := svc.EnsureUser(ctx, id, " ada@campus.edu ", "Ada")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, created.Role)
	assert.Equal(t, "ada@campus.edu", created.Email)

	again, err := svc.EnsureUser(ctx, id, "other@campus.edu", "Other")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.FullName, "existing rows are not overwritten")

	_, err = svc.EnsureUser(ctx, uuid.Nil, "x@campus.edu", "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t, auth.Policy{})
	ada := users.Put(newStudent("ada"))

	updated, err := svc.UpdateProfile(ctx, ada.ID, &dto.UpdateProfileRequest{
		Skills: []string{" Go ", "go", "", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, updated.Skills)

	blank := " "
	_, err = svc.UpdateProfile(ctx, ada.ID, &dto.UpdateProfileRequest{FullName: &blank})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUserService_UpdateAdminFields(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserFixture(t, auth.Policy{})
	student := users.Put(newStudent("ada"))
	admin := newStudent("root")
	admin.Role = models.RoleAdmin
	users.Put(admin)

	about := "Runs the incubator"
	_, err := svc.UpdateAdminFields(ctx, student.ID, &dto.UpdateAdminFieldsRequest{AdminAbout: &about})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateAdminFields(ctx, admin.ID, &dto.UpdateAdminFieldsRequest{AdminAbout: &about})
	require.NoError(t, err)
	require.NotNil(t, updated.AdminAbout)
	assert.Equal(t, about, *updated.AdminAbout)
}

func TestUserService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	promotable := newStudent("promotable")
	exempt := newStudent("exempt")
	exempt.Role = models.RoleAdmin
	policy := auth.Policy{
		PromotableAdminID:     promotable.ID,
		AdminPassphraseHash:   string(hash),
		RoleReversionExemptID: exempt.ID,
	}

	t.Run("allow-listed identity with passphrase is promoted", func(t *testing.T) {
		svc, users := newUserFixture(t, policy)
		users.Put(promotable)

		_, err := svc.ChangeRole(ctx, promotable.ID, &dto.ChangeRoleRequest{Role: "admin", Passphrase: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		user, err := svc.ChangeRole(ctx, promotable.ID, &dto.ChangeRoleRequest{Role: "Admin", Passphrase: "open sesame"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("other identities cannot self-promote", func(t *testing.T) {
		svc, users := newUserFixture(t, policy)
		other := users.Put(newStudent("other"))

		_, err := svc.ChangeRole(ctx, other.ID, &dto.ChangeRoleRequest{Role: "admin", Passphrase: "open sesame"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		stored, _ := users.GetByID(ctx, other.ID)
		assert.Equal(t, models.RoleStudent, stored.Role)
	})

	t.Run("admins cannot revert unless exempt", func(t *testing.T) {
		svc, users := newUserFixture(t, policy)
		admin := newStudent("admin")
		admin.Role = models.RoleAdmin
		users.Put(admin)
		users.Put(exempt)

		_, err := svc.ChangeRole(ctx, admin.ID, &dto.ChangeRoleRequest{Role: "student"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		user, err := svc.ChangeRole(ctx, exempt.ID, &dto.ChangeRoleRequest{Role: "student"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, user.Role)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		svc, users := newUserFixture(t, auth.Policy{})
		ada := users.Put(newStudent("ada"))

		user, err := svc.ChangeRole(ctx, ada.ID, &dto.ChangeRoleRequest{Role: "student"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, user.Role)
	})

	t.Run("empty allow-list promotes nobody", func(t *testing.T) {
		svc, users := newUserFixture(t, auth.Policy{AdminPassphraseHash: string(hash)})
		ada := users.Put(newStudent("ada"))

		_, err := svc.ChangeRole(ctx, ada.ID, &dto.ChangeRoleRequest{Role: "admin", Passphrase: "open sesame"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, users := newUserFixture(t, auth.Policy{})
		ada := users.Put(newStudent("ada"))

		_, err := svc.ChangeRole(ctx, ada.ID, &dto.ChangeRoleRequest{Role: "founder"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
