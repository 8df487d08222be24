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

// JobRepository is an in-memory repositories.IJobRepository
type JobRepository struct {
	mu   sync.Mutex
	jobs []*models.Job
}

var _ repositories.IJobRepository = (*JobRepository)(nil)

// NewJobRepository creates an empty JobRepository
func NewJobRepository() *JobRepository {
	return &JobRepository{}
}

func (r *JobRepository) Create(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	cp := *job
	r.jobs = append(r.jobs, &cp)
	return nil
}

func (r *JobRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *JobRepository) List(_ context.Context, companyID *uuid.UUID) ([]*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Job{}
	for _, j := range r.jobs {
		if companyID != nil && j.CompanyID != *companyID {
			continue
		}
		cp := *j
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *JobRepository) Update(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, j := range r.jobs {
		if j.ID == job.ID {
			cp := *job
			cp.CompanyID, cp.CreatedAt = j.CompanyID, j.CreatedAt
			r.jobs[i] = &cp
			return nil
		}
	}
	return apperrors.ErrJobNotFound
}

func (r *JobRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, j := range r.jobs {
		if j.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrJobNotFound
}

// ApplicationRepository is an in-memory repositories.IApplicationRepository.
// (job, applicant) is unique.
type ApplicationRepository struct {
	mu           sync.Mutex
	applications []*models.Application
	jobs         *JobRepository
}

var _ repositories.IApplicationRepository = (*ApplicationRepository)(nil)

// NewApplicationRepository creates an empty ApplicationRepository. When jobs is
// non-nil, Create enforces the job foreign key.
func NewApplicationRepository(jobs *JobRepository) *ApplicationRepository {
	return &ApplicationRepository{jobs: jobs}
}

func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	if r.jobs != nil {
		job, _ := r.jobs.GetByID(ctx, application.JobID)
		if job == nil {
			return apperrors.ErrJobNotFound
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.JobID == application.JobID && a.ApplicantID == application.ApplicantID {
			return apperrors.ErrAlreadyApplied
		}
	}
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	if application.SubmittedAt.IsZero() {
		application.SubmittedAt = time.Now().UTC()
	}
	cp := *application
	r.applications = append(r.applications, &cp)
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ApplicationRepository) filter(keep func(*models.Application) bool) []*models.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Application{}
	for _, a := range r.applications {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].SubmittedAt.After(out[k].SubmittedAt) })
	return out
}

func (r *ApplicationRepository) ListByJob(_ context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	return r.filter(func(a *models.Application) bool { return a.JobID == jobID }), nil
}

func (r *ApplicationRepository) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]*models.Application, error) {
	return r.filter(func(a *models.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *ApplicationRepository) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return apperrors.ErrApplicationNotFound
}

// Count returns how many applications exist for (jobID, applicantID)
func (r *ApplicationRepository) Count(jobID, applicantID uuid.UUID) int {
	return len(r.filter(func(a *models.Application) bool {
		return a.JobID == jobID && a.ApplicantID == applicantID
	}))
}
