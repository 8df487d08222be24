package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/launchpad/internal/app/auth"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/repositories/repotest"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

type hiringFixture struct {
	svc          JobService
	jobs         *repotest.JobRepository
	applications *repotest.ApplicationRepository
}

func newHiringFixture() *hiringFixture {
	users := repotest.NewUserRepository()
	startups := repotest.NewStartupRepository()
	jobs := repotest.NewJobRepository()
	applications := repotest.NewApplicationRepository(jobs)
	authz := auth.NewAuthorizationService(users, startups, auth.Policy{}, zerolog.Nop())
	return &hiringFixture{
		svc:          NewJobService(jobs, applications, authz, zerolog.Nop()),
		jobs:         jobs,
		applications: applications,
	}
}

func representative() *auth.Capability {
	return &auth.Capability{
		UserID:    uuid.New(),
		Role:      models.RoleStudent,
		Kind:      auth.CapabilityApprovedStartup,
		StartupID: uuid.New(),
	}
}

func adminCapability() *auth.Capability {
	return &auth.Capability{UserID: uuid.New(), Role: models.RoleAdmin, Kind: auth.CapabilityAdmin}
}

func noCapability() *auth.Capability {
	return &auth.Capability{UserID: uuid.New(), Role: models.RoleStudent, Kind: auth.CapabilityNone}
}

func jobRequest(title string) *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		RoleTitle:   title,
		Description: "Build our API",
		Type:        "Internship",
	}
}

func TestJobService_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newHiringFixture()
	alpha, beta := representative(), representative()

	alphaJob, err := f.svc.CreateJob(ctx, alpha, jobRequest("Alpha Backend"))
	require.NoError(t, err)
	assert.Equal(t, alpha.StartupID, alphaJob.CompanyID)
	_, err = f.svc.CreateJob(ctx, beta, jobRequest("Beta Designer"))
	require.NoError(t, err)

	t.Run("representatives see only their own jobs", func(t *testing.T) {
		jobs, err := f.svc.ListJobs(ctx, alpha)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, alphaJob.ID, jobs[0].ID)
	})

	t.Run("admins see every job", func(t *testing.T) {
		jobs, err := f.svc.ListJobs(ctx, adminCapability())
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("callers without capability see nothing", func(t *testing.T) {
		jobs, err := f.svc.ListJobs(ctx, noCapability())
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("reading another startup's job is forbidden", func(t *testing.T) {
		_, err := f.svc.GetJob(ctx, beta, alphaJob.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		_, err = f.svc.GetJob(ctx, noCapability(), alphaJob.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotApprovedStartup)

		job, err := f.svc.GetJob(ctx, adminCapability(), alphaJob.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha Backend", job.RoleTitle)
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := f.svc.GetJob(ctx, alpha, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})
}

func TestJobService_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("admins are read-only", func(t *testing.T) {
		f := newHiringFixture()
		owner := representative()
		job, err := f.svc.CreateJob(ctx, owner, jobRequest("Backend"))
		require.NoError(t, err)

		admin := adminCapability()
		_, err = f.svc.CreateJob(ctx, admin, jobRequest("Nope"))
		assert.ErrorIs(t, err, apperrors.ErrAdminReadOnlyHiring)
		title := "Changed"
		_, err = f.svc.UpdateJob(ctx, admin, job.ID, &dto.UpdateJobRequest{RoleTitle: &title})
		assert.ErrorIs(t, err, apperrors.ErrAdminReadOnlyHiring)
		assert.ErrorIs(t, f.svc.DeleteJob(ctx, admin, job.ID), apperrors.ErrAdminReadOnlyHiring)
	})

	t.Run("students without an approved startup cannot post", func(t *testing.T) {
		f := newHiringFixture()
		_, err := f.svc.CreateJob(ctx, noCapability(), jobRequest("Backend"))
		assert.ErrorIs(t, err, apperrors.ErrNotApprovedStartup)
	})

	t.Run("cross-startup mutation is forbidden", func(t *testing.T) {
		f := newHiringFixture()
		owner, other := representative(), representative()
		job, err := f.svc.CreateJob(ctx, owner, jobRequest("Backend"))
		require.NoError(t, err)

		title := "Hijacked"
		_, err = f.svc.UpdateJob(ctx, other, job.ID, &dto.UpdateJobRequest{RoleTitle: &title})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, f.svc.DeleteJob(ctx, other, job.ID), apperrors.ErrPermissionDenied)

		stored, err := f.jobs.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Backend", stored.RoleTitle)
	})

	t.Run("owner updates and deletes", func(t *testing.T) {
		f := newHiringFixture()
		owner := representative()
		job, err := f.svc.CreateJob(ctx, owner, jobRequest("Backend"))
		require.NoError(t, err)

		location := " Remote "
		updated, err := f.svc.UpdateJob(ctx, owner, job.ID, &dto.UpdateJobRequest{Location: &location})
		require.NoError(t, err)
		require.NotNil(t, updated.Location)
		assert.Equal(t, "Remote", *updated.Location)
		assert.Equal(t, "Backend", updated.RoleTitle)

		blank := " "
		_, err = f.svc.UpdateJob(ctx, owner, job.ID, &dto.UpdateJobRequest{RoleTitle: &blank})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		require.NoError(t, f.svc.DeleteJob(ctx, owner, job.ID))
		_, err = f.svc.GetJob(ctx, owner, job.ID)
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})

	t.Run("missing job fields", func(t *testing.T) {
		f := newHiringFixture()
		_, err := f.svc.CreateJob(ctx, representative(), &dto.CreateJobRequest{RoleTitle: "Backend"})
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, []string{"description", "type"}, apperrors.DetailsOf(err)["fields"])
	})
}

func TestJobService_Applications(t *testing.T) {
	ctx := context.Background()
	f := newHiringFixture()
	owner := representative()
	job, err := f.svc.CreateJob(ctx, owner, jobRequest("Backend"))
	require.NoError(t, err)
	applicant := uuid.New()

	t.Run("apply once", func(t *testing.T) {
		application, err := f.svc.Apply(ctx, job.ID, applicant, &dto.ApplyRequest{ResumeLink: "https://cv.example.com/a.pdf"})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusApplied, application.Status)
	})

	t.Run("second application conflicts and leaves one row", func(t *testing.T) {
		_, err := f.svc.Apply(ctx, job.ID, applicant, &dto.ApplyRequest{ResumeLink: "https://cv.example.com/b.pdf"})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
		assert.Equal(t, 1, f.applications.Count(job.ID, applicant))
	})

	t.Run("resume link is required", func(t *testing.T) {
		_, err := f.svc.Apply(ctx, job.ID, uuid.New(), &dto.ApplyRequest{ResumeLink: "  "})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := f.svc.Apply(ctx, uuid.New(), applicant, &dto.ApplyRequest{ResumeLink: "https://cv.example.com/a.pdf"})
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})

	t.Run("only the owner and admins list applications", func(t *testing.T) {
		list, err := f.svc.ListApplications(ctx, owner, job.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		list, err = f.svc.ListApplications(ctx, adminCapability(), job.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		_, err = f.svc.ListApplications(ctx, representative(), job.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("status update by owner only", func(t *testing.T) {
		mine, err := f.svc.ListMyApplications(ctx, applicant)
		require.NoError(t, err)
		require.Len(t, mine, 1)

		_, err = f.svc.UpdateApplicationStatus(ctx, adminCapability(), mine[0].ID, "Shortlisted")
		assert.ErrorIs(t, err, apperrors.ErrAdminReadOnlyHiring)

		updated, err := f.svc.UpdateApplicationStatus(ctx, owner, mine[0].ID, " Shortlisted ")
		require.NoError(t, err)
		assert.Equal(t, "Shortlisted", updated.Status)

		_, err = f.svc.UpdateApplicationStatus(ctx, owner, uuid.New(), "Shortlisted")
		assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
	})
}
