package models

import (
	"time"

	"github.com/google/uuid"
)

// Startup is one startup application; a user's latest record is the active one
type Startup struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	UserID           uuid.UUID     `json:"userId" db:"user_id"`
	Name             string        `json:"name" db:"name"`
	ProblemStatement string        `json:"problemStatement" db:"problem_statement"`
	Domain           string        `json:"domain" db:"domain"`
	Stage            StartupStage  `json:"stage" db:"stage"`
	Description      *string       `json:"description,omitempty" db:"description"`
	Website          *string       `json:"website,omitempty" db:"website"`
	HeadName         string        `json:"headName" db:"head_name"`
	HeadEmail        string        `json:"headEmail" db:"head_email"`
	IsActive         bool          `json:"isActive" db:"is_active"`
	Status           StartupStatus `json:"status" db:"status"`
	RejectionReason  *string       `json:"rejectionReason,omitempty" db:"rejection_reason"`
	ReapplyAfter     *time.Time    `json:"reapplyAfter,omitempty" db:"reapply_after"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	ReviewedAt       *time.Time    `json:"reviewedAt,omitempty" db:"reviewed_at"`
}

// CoolingDown reports whether a rejected record still blocks resubmission at now
func (s *Startup) CoolingDown(now time.Time) bool {
	if s == nil || s.Status != StartupRejected || s.ReapplyAfter == nil {
		return false
	}
	return !now.After(*s.ReapplyAfter)
}
