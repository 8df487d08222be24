package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrUnauthorized = errors.New("authentication required")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// Lifecycle errors
var (
	ErrStartupNotFound     = NewResourceNotFoundError("Startup not found")
	ErrStartupInProgress   = NewConflictError("You already have a startup application in progress or approved")
	ErrStudentsOnly        = NewForbiddenError("Only students can submit a startup")
	ErrNotApprovedStartup  = NewForbiddenError("An approved startup is required for this action")
	ErrAdminReadOnlyHiring = NewForbiddenError("Admins have read-only access to hiring data")
)

// Hiring errors
var (
	ErrJobNotFound         = NewResourceNotFoundError("Job not found")
	ErrApplicationNotFound = NewResourceNotFoundError("Application not found")
	ErrAlreadyApplied      = NewConflictError("You have already applied to this job")
)

// User errors
var (
	ErrUserNotFound         = NewResourceNotFoundError("User not found")
	ErrNotificationNotFound = NewResourceNotFoundError("Notification not found")
	ErrPostNotFound         = NewResourceNotFoundError("Post not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) *CustomError {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) *CustomError {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) *CustomError {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for invalid input with a message
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Err:     ErrInvalidInput,
		Message: message,
	}
}

// NewUnauthorizedError creates a new custom error for a missing or invalid identity
func NewUnauthorizedError(message string) *CustomError {
	return &CustomError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error. The receiver is copied so
// package-level sentinels are never mutated.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	cp := *e
	cp.Details = details
	return &cp
}

// DetailsOf returns the details attached to the first CustomError in err's chain.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
