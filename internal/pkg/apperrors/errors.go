package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Student errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrDuplicateStudentID = errors.New("student with this national id already exists")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrDuplicateCourseCode = errors.New("course with this code already exists")
)

// Lecturer errors
var (
	ErrLecturerNotFound    = errors.New("lecturer not found")
	ErrDuplicateLecturerID = errors.New("lecturer with this id already exists")
	ErrPermanentLecturer   = errors.New("permanent lecturers cannot be deleted, only edited")
)

// Study file errors
var (
	ErrFileNotFound   = errors.New("file not found")
	ErrCourseRequired = errors.New("please select a course for this file")
)

// Session errors
var (
	ErrNotLoggedIn = errors.New("no current user")
)

// Storage errors. These never reach the user: backends return them and the
// key-value store logs and swallows them.
var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsNotFound reports whether err is one of the lookup errors
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound, ErrStudentNotFound, ErrCourseNotFound, ErrLecturerNotFound, ErrFileNotFound)
}

// IsConflict reports whether err is one of the uniqueness errors
func IsConflict(err error) bool {
	return Is(err, ErrDuplicateStudentID, ErrDuplicateCourseCode, ErrDuplicateLecturerID)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
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

// NewValidationError creates a validation error bound to a request field
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}
