package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/repositories/repotest"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

type startupFixture struct {
	svc      StartupService
	startups *repotest.StartupRepository
	users    *repotest.UserRepository
	now      time.Time
}

func newStartupFixture() *startupFixture {
	f := &startupFixture{
		startups: repotest.NewStartupRepository(),
		users:    repotest.NewUserRepository(),
		now:      baseTime,
	}
	svc := NewStartupService(f.startups, f.users, zerolog.Nop())
	svc.(*startupServiceImpl).now = fixedClock(&f.now)
	f.svc = svc
	return f
}

func TestStartupService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending startup with normalized stage", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))

		startup, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)

		assert.Equal(t, models.StartupPending, startup.Status)
		assert.Equal(t, models.StageMVP, startup.Stage)
		assert.Equal(t, founder.ID, startup.UserID)
		assert.Equal(t, baseTime, startup.CreatedAt)
		assert.Nil(t, startup.ReapplyAfter)
		assert.Equal(t, 1, f.startups.Count(founder.ID))
	})

	t.Run("accepts unrecognized stage unchanged", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		req := validSubmission()
		req.Stage = " Growth "

		startup, err := f.svc.Submit(ctx, founder.ID, req)
		require.NoError(t, err)
		assert.Equal(t, models.StartupStage("Growth"), startup.Stage)
	})

	t.Run("blank optional fields are dropped", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		req := validSubmission()
		req.Website = strPtr("   ")
		req.Description = strPtr(" rides ")

		startup, err := f.svc.Submit(ctx, founder.ID, req)
		require.NoError(t, err)
		assert.Nil(t, startup.Website)
		require.NotNil(t, startup.Description)
		assert.Equal(t, "rides", *startup.Description)
	})

	t.Run("admins cannot submit", func(t *testing.T) {
		f := newStartupFixture()
		admin := newStudent("root")
		admin.Role = models.RoleAdmin
		f.users.Put(admin)

		_, err := f.svc.Submit(ctx, admin.ID, validSubmission())
		assert.ErrorIs(t, err, apperrors.ErrStudentsOnly)
		assert.Equal(t, 0, f.startups.Count(admin.ID))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		f := newStartupFixture()
		_, err := f.svc.Submit(ctx, uuid.New(), validSubmission())
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("open application blocks a second submission", func(t *testing.T) {
		for _, status := range []models.StartupStatus{models.StartupPending, models.StartupApproved} {
			t.Run(string(status), func(t *testing.T) {
				f := newStartupFixture()
				founder := f.users.Put(newStudent("ada"))
				first, err := f.svc.Submit(ctx, founder.ID, validSubmission())
				require.NoError(t, err)
				if status == models.StartupApproved {
					_, err = f.svc.Approve(ctx, first.ID)
					require.NoError(t, err)
				}

				_, err = f.svc.Submit(ctx, founder.ID, validSubmission())
				assert.ErrorIs(t, err, apperrors.ErrStartupInProgress)
				assert.Equal(t, 1, f.startups.Count(founder.ID))
				assert.Equal(t, 1, f.startups.OpenCount(founder.ID))
			})
		}
	})

	t.Run("eligibility is checked before fields", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		_, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)

		_, err = f.svc.Submit(ctx, founder.ID, &dto.SubmitStartupRequest{})
		assert.ErrorIs(t, err, apperrors.ErrStartupInProgress)
	})

	t.Run("missing fields are listed", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		req := validSubmission()
		req.Name = " "
		req.HeadEmail = ""

		_, err := f.svc.Submit(ctx, founder.ID, req)
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, []string{"name", "headEmail"}, apperrors.DetailsOf(err)["fields"])
		assert.Equal(t, 0, f.startups.Count(founder.ID))
	})

	t.Run("inactive startups are refused", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		req := validSubmission()
		req.IsActive = false

		_, err := f.svc.Submit(ctx, founder.ID, req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestStartupService_RejectionCooldown(t *testing.T) {
	ctx := context.Background()
	f := newStartupFixture()
	founder := f.users.Put(newStudent("ada"))

	first, err := f.svc.Submit(ctx, founder.ID, validSubmission())
	require.NoError(t, err)

	f.now = baseTime.Add(time.Hour)
	rejected, err := f.svc.Reject(ctx, first.ID, "  too vague ")
	require.NoError(t, err)

	require.NotNil(t, rejected.ReapplyAfter)
	reapplyAfter := *rejected.ReapplyAfter
	assert.Equal(t, f.now.Add(5*24*time.Hour), reapplyAfter)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "too vague", *rejected.RejectionReason)
	require.NotNil(t, rejected.ReviewedAt)
	assert.Equal(t, f.now, *rejected.ReviewedAt)

	t.Run("blocked until reapply_after inclusive", func(t *testing.T) {
		for _, at := range []time.Time{f.now.Add(time.Minute), reapplyAfter} {
			f.now = at
			_, err := f.svc.Submit(ctx, founder.ID, validSubmission())
			require.ErrorIs(t, err, apperrors.ErrPermissionDenied)

			details := apperrors.DetailsOf(err)
			assert.Equal(t, models.StartupRejected, details["status"])
			assert.Equal(t, &reapplyAfter, details["reapply_after"])
			assert.Equal(t, "too vague", details["rejection_reason"])
		}
		assert.Equal(t, 1, f.startups.Count(founder.ID))
	})

	t.Run("founder view shows rejection metadata", func(t *testing.T) {
		view, err := f.svc.GetMine(ctx, founder.ID)
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, models.StartupRejected, view.Status)
		assert.Equal(t, &reapplyAfter, view.ReapplyAfter)
		assert.Nil(t, view.Startup)
	})

	t.Run("allowed once the cooldown has passed", func(t *testing.T) {
		f.now = reapplyAfter.Add(time.Second)
		second, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)
		assert.Equal(t, models.StartupPending, second.Status)
		assert.Equal(t, 2, f.startups.Count(founder.ID))

		latest, err := f.startups.GetLatestByUserID(ctx, founder.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, latest.ID)
	})
}

func TestStartupService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("approve clears earlier rejection", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		startup, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)
		_, err = f.svc.Reject(ctx, startup.ID, "needs work")
		require.NoError(t, err)

		approved, err := f.svc.Approve(ctx, startup.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StartupApproved, approved.Status)
		assert.Nil(t, approved.RejectionReason)
		assert.Nil(t, approved.ReapplyAfter)
		assert.NotNil(t, approved.ReviewedAt)

		view, err := f.svc.GetMine(ctx, founder.ID)
		require.NoError(t, err)
		require.NotNil(t, view.Startup)
		assert.Equal(t, startup.ID, view.Startup.ID)
	})

	t.Run("superseded applications cannot be approved", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		first, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)
		rejected, err := f.svc.Reject(ctx, first.ID, "needs work")
		require.NoError(t, err)

		f.now = rejected.ReapplyAfter.Add(time.Second)
		second, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)
		rejectedAgain, err := f.svc.Reject(ctx, second.ID, "still needs work")
		require.NoError(t, err)

		_, err = f.svc.Approve(ctx, first.ID)
		require.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, models.StartupRejected, apperrors.DetailsOf(err)["status"])
		assert.Equal(t, 0, f.startups.OpenCount(founder.ID))

		stored, err := f.svc.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StartupRejected, stored.Status)

		f.now = rejectedAgain.ReapplyAfter.Add(time.Second)
		third, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)
		assert.Equal(t, models.StartupPending, third.Status)
		assert.Equal(t, 1, f.startups.OpenCount(founder.ID))
	})

	t.Run("approved startups cannot be rejected", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		startup, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)
		_, err = f.svc.Approve(ctx, startup.ID)
		require.NoError(t, err)

		_, err = f.svc.Reject(ctx, startup.ID, "changed our mind")
		require.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, models.StartupApproved, apperrors.DetailsOf(err)["status"])

		stored, err := f.svc.Get(ctx, startup.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StartupApproved, stored.Status)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		f := newStartupFixture()
		founder := f.users.Put(newStudent("ada"))
		startup, err := f.svc.Submit(ctx, founder.ID, validSubmission())
		require.NoError(t, err)

		_, err = f.svc.Reject(ctx, startup.ID, "   ")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("unknown startup", func(t *testing.T) {
		f := newStartupFixture()
		_, err := f.svc.Approve(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrStartupNotFound)
		_, err = f.svc.Reject(ctx, uuid.New(), "no")
		assert.ErrorIs(t, err, apperrors.ErrStartupNotFound)
	})

	t.Run("list filters by status", func(t *testing.T) {
		f := newStartupFixture()
		a := f.users.Put(newStudent("ada"))
		b := f.users.Put(newStudent("bob"))
		first, err := f.svc.Submit(ctx, a.ID, validSubmission())
		require.NoError(t, err)
		_, err = f.svc.Submit(ctx, b.ID, validSubmission())
		require.NoError(t, err)
		_, err = f.svc.Approve(ctx, first.ID)
		require.NoError(t, err)

		pending := models.StartupPending
		list, err := f.svc.ListForReview(ctx, &pending)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, b.ID, list[0].UserID)

		bogus := models.StartupStatus("DRAFT")
		_, err = f.svc.ListForReview(ctx, &bogus)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestStartupService_Withdraw(t *testing.T) {
	ctx := context.Background()
	f := newStartupFixture()
	founder := f.users.Put(newStudent("ada"))

	require.NoError(t, f.svc.Withdraw(ctx, founder.ID), "withdrawing nothing is a no-op")

	_, err := f.svc.Submit(ctx, founder.ID, validSubmission())
	require.NoError(t, err)
	require.NoError(t, f.svc.Withdraw(ctx, founder.ID))

	view, err := f.svc.GetMine(ctx, founder.ID)
	require.NoError(t, err)
	assert.Nil(t, view)

	_, err = f.svc.Submit(ctx, founder.ID, validSubmission())
	assert.NoError(t, err, "withdrawal frees the slot immediately")
}
