package dto

import (
	"time"

	"github.com/yigit/launchpad/internal/app/models"
)

// SubmitStartupRequest is the body of a startup submission.
// Field checks happen in the lifecycle service after the eligibility checks.
type SubmitStartupRequest struct {
	Name             string  `json:"name" example:"CampusRide"`
	ProblemStatement string  `json:"problemStatement" example:"Students waste hours waiting for shuttles"`
	Domain           string  `json:"domain" example:"Mobility"`
	Stage            string  `json:"stage" example:"mvp"`
	Description      *string `json:"description,omitempty"`
	Website          *string `json:"website,omitempty" example:"https://campusride.app"`
	HeadName         string  `json:"headName" example:"Ada Lovelace"`
	HeadEmail        string  `json:"headEmail" example:"ada@campus.edu"`
	IsActive         bool    `json:"isActive" example:"true"`
}

// RejectStartupRequest carries the reviewer's rejection reason
type RejectStartupRequest struct {
	Reason string `json:"reason" example:"Problem statement is too vague"`
}

// MyStartupView is what a founder sees of their latest startup.
// Startup is populated only once it is approved.
type MyStartupView struct {
	Status          models.StartupStatus `json:"status" example:"PENDING"`
	Message         string               `json:"message,omitempty" example:"Your startup is under review"`
	RejectionReason *string              `json:"rejectionReason,omitempty"`
	ReapplyAfter    *time.Time           `json:"reapplyAfter,omitempty"`
	Startup         *models.Startup      `json:"startup,omitempty"`
}
