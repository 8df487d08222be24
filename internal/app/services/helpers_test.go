package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
)

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// fixedClock returns a Clock reading *now, so tests can move time forward
func fixedClock(now *time.Time) Clock {
	return func() time.Time { return *now }
}

func strPtr(s string) *string { return &s }

func newStudent(name string) models.User {
	return models.User{
		ID:       uuid.New(),
		Email:    name + "@campus.edu",
		FullName: name,
		Role:     models.RoleStudent,
	}
}

func validSubmission() *dto.SubmitStartupRequest {
	return &dto.SubmitStartupRequest{
		Name:             "CampusRide",
		ProblemStatement: "Students wait too long for shuttles",
		Domain:           "Mobility",
		Stage:            "mvp",
		HeadName:         "Ada Lovelace",
		HeadEmail:        "ada@campus.edu",
		IsActive:         true,
	}
}
