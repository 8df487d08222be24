package models

import "strings"

// Role defines the user role
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// StartupStage is the maturity of a startup
type StartupStage string

const (
	StageIdea    StartupStage = "IDEA"
	StageMVP     StartupStage = "MVP"
	StageScaling StartupStage = "SCALING"
)

// NormalizeStage maps a case-insensitive stage onto the known stages.
// Unrecognized values are returned unchanged.
func NormalizeStage(raw string) StartupStage {
	trimmed := strings.TrimSpace(raw)
	switch StartupStage(strings.ToUpper(trimmed)) {
	case StageIdea:
		return StageIdea
	case StageMVP:
		return StageMVP
	case StageScaling:
		return StageScaling
	}
	return StartupStage(trimmed)
}

// Known reports whether the stage is one of IDEA, MVP or SCALING
func (s StartupStage) Known() bool {
	return s == StageIdea || s == StageMVP || s == StageScaling
}

// StartupStatus is the review state of a startup application
type StartupStatus string

const (
	StartupPending  StartupStatus = "PENDING"
	StartupApproved StartupStatus = "APPROVED"
	StartupRejected StartupStatus = "REJECTED"
)

// Valid reports whether s is a known status
func (s StartupStatus) Valid() bool {
	return s == StartupPending || s == StartupApproved || s == StartupRejected
}

// Open reports whether the status blocks a new submission outright
func (s StartupStatus) Open() bool {
	return s == StartupPending || s == StartupApproved
}

// ApplicationStatusApplied is the initial status of every job application
const ApplicationStatusApplied = "Applied"

// NotificationTypeLetsBuild tags notices produced when someone joins a post
const NotificationTypeLetsBuild = "lets_build"
