package middleware

import (
	"errors"
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError

	// Check for specific error types
	switch {
	case errors.As(err, &custom) && custom.Field != "":
		respond(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, custom.Error()).WithField(custom.Field))
	case errors.Is(err, apperrors.ErrCourseRequired):
		respond(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeCourseRequired, apperrors.ErrCourseRequired.Error()).WithField("courseId"))
	case apperrors.IsConflict(err):
		message, field := describeConflict(err)
		respond(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message).WithField(field))
	case apperrors.IsNotFound(err):
		respond(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found").WithDetails(err.Error()))
	case errors.Is(err, apperrors.ErrPermanentLecturer):
		respond(c, http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, apperrors.ErrPermanentLecturer.Error()))
	case errors.Is(err, apperrors.ErrNotLoggedIn):
		respond(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Not logged in"))
	default:
		// Handle unknown errors
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

// describeConflict returns the message and offending field of a uniqueness error
func describeConflict(err error) (string, string) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateCourseCode):
		return "Duplicate course code", "code"
	case errors.Is(err, apperrors.ErrDuplicateStudentID):
		return "Student ID already exists", "id"
	default:
		return "Lecturer ID already exists", "id"
	}
}

func respond(c *gin.Context, status int, detail *dto.ErrorDetail) {
	if status < http.StatusInternalServerError {
		detail = detail.WithSeverity(dto.ErrorSeverityWarning)
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}
