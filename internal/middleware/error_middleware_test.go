package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"course not found", fmt.Errorf("%w: c1", apperrors.ErrCourseNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"file not found", apperrors.ErrFileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate code", fmt.Errorf("%w: CS101", apperrors.ErrDuplicateCourseCode), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate student", apperrors.ErrDuplicateStudentID, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate lecturer", fmt.Errorf("%w: 123456789", apperrors.ErrDuplicateLecturerID), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"permanent lecturer", fmt.Errorf("%w: 1", apperrors.ErrPermanentLecturer), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"course required", apperrors.ErrCourseRequired, http.StatusBadRequest, dto.ErrorCodeCourseRequired},
		{"field validation", apperrors.NewValidationError("name", "name is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"not logged in", apperrors.ErrNotLoggedIn, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			var resp dto.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Success || resp.Error == nil || resp.Error.Code != tt.code {
				t.Fatalf("response = %s", w.Body.String())
			}
		})
	}
}

func TestHandleAPIErrorFieldAndSeverity(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		field    string
		severity dto.ErrorSeverity
	}{
		{"blank name", fmt.Errorf("create: %w", apperrors.NewValidationError("name", "name must not be blank")), "name", dto.ErrorSeverityWarning},
		{"duplicate code", apperrors.ErrDuplicateCourseCode, "code", dto.ErrorSeverityWarning},
		{"duplicate lecturer", apperrors.ErrDuplicateLecturerID, "id", dto.ErrorSeverityWarning},
		{"unknown", errors.New("boom"), "", dto.ErrorSeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			var resp dto.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error.Field != tt.field || resp.Error.Severity != tt.severity {
				t.Fatalf("error = %+v", resp.Error)
			}
		})
	}
}

func TestBindJSONReportsFields(t *testing.T) {
	if err := validation.RegisterGin(); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"12","fullName":"D","email":"x","semester":0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req dto.CreateStudentRequest
	if BindJSON(c, &req) {
		t.Fatal("invalid body accepted")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	for _, field := range []string{"id", "fullName", "email", "semester"} {
		if !strings.Contains(w.Body.String(), `"`+field+`"`) {
			t.Errorf("field %s missing from %s", field, w.Body.String())
		}
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("no request id assigned")
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc" {
		t.Fatalf("request id = %q, want the caller's", got)
	}
}
