package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting owned by exactly one startup
type Job struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	CompanyID           uuid.UUID  `json:"companyId" db:"company_id"`
	RoleTitle           string     `json:"roleTitle" db:"role_title"`
	Description         string     `json:"description" db:"description"`
	Type                string     `json:"type" db:"type"`
	ExternalLink        *string    `json:"externalLink,omitempty" db:"external_link"`
	Location            *string    `json:"location,omitempty" db:"location"`
	Stipend             *string    `json:"stipend,omitempty" db:"stipend"`
	Duration            *string    `json:"duration,omitempty" db:"duration"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty" db:"application_deadline"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
}

// Application links an applicant to a job; (job, applicant) is unique
type Application struct {
	ID          uuid.UUID `json:"id" db:"id"`
	JobID       uuid.UUID `json:"jobId" db:"job_id"`
	ApplicantID uuid.UUID `json:"applicantId" db:"applicant_id"`
	ResumeLink  string    `json:"resumeLink" db:"resume_link"`
	Status      string    `json:"status" db:"status"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}
