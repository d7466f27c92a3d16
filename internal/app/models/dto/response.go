package dto

import (
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/popularity"
)

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Course created"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful response
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// ViewResponse reports the outcome of a view increment
type ViewResponse struct {
	Counted bool `json:"counted"`
	Views   int  `json:"views"`
}

// PopularResponse holds the popularity rankings
type PopularResponse struct {
	TopCourses []CourseSummary            `json:"topCourses"`
	TopFiles   []popularity.FileAggregate `json:"topFiles"`
}

// CourseSummary is a ranked course with its lecturer's name resolved
type CourseSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Views        int    `json:"views"`
	LecturerName string `json:"lecturerName,omitempty"`
}
