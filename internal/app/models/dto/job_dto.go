package dto

import "time"

// CreateJobRequest is the body for posting a job under the caller's startup
type CreateJobRequest struct {
	RoleTitle           string     `json:"roleTitle" binding:"required,notblank,max=255" example:"Backend Intern"`
	Description         string     `json:"description" binding:"required,notblank" example:"Build our Go API"`
	Type                string     `json:"type" binding:"required,notblank,max=50" example:"Internship"`
	ExternalLink        *string    `json:"externalLink,omitempty" binding:"omitempty,weburl"`
	Location            *string    `json:"location,omitempty" example:"Remote"`
	Stipend             *string    `json:"stipend,omitempty" example:"10000/month"`
	Duration            *string    `json:"duration,omitempty" example:"3 months"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

// UpdateJobRequest changes the provided job fields; omitted fields stay as they are
type UpdateJobRequest struct {
	RoleTitle           *string    `json:"roleTitle,omitempty" binding:"omitempty,max=255"`
	Description         *string    `json:"description,omitempty"`
	Type                *string    `json:"type,omitempty" binding:"omitempty,max=50"`
	ExternalLink        *string    `json:"externalLink,omitempty" binding:"omitempty,weburl"`
	Location            *string    `json:"location,omitempty"`
	Stipend             *string    `json:"stipend,omitempty"`
	Duration            *string    `json:"duration,omitempty"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

// ApplyRequest is the body for applying to a job
type ApplyRequest struct {
	ResumeLink string `json:"resumeLink" binding:"omitempty,weburl" example:"https://drive.example.com/cv.pdf"`
}

// UpdateApplicationStatusRequest sets a reviewer-defined application status
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,notblank,max=50" example:"Shortlisted"`
}
