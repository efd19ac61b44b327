package services

import (
	"errors"
	"strings"
)

// Sentinel errors surfaced to controllers, which map them onto the error
// code space.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminInactive      = errors.New("administrator account is not active")
	ErrAdminNotFound      = errors.New("administrator not found")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDuplicateEmail     = errors.New("employee with this email already exists")
	ErrEmployeeNotDeleted = errors.New("deleted employee not found")
	ErrRestoreConflict    = errors.New("cannot restore: another active employee with this email exists")

	ErrInvalidFile     = errors.New("invalid file")
	ErrFileTooLarge    = errors.New("file too large")
	ErrPictureNotFound = errors.New("profile picture not found")
)

// ValidationErrors carries the itemized per-field messages of a rejected
// payload, each in "Field: message" form.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

// AsValidationErrors unwraps err into ValidationErrors if possible.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
