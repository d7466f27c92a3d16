package dto

import "github.com/Taha-Code-Hup/OnoTime/internal/app/models"

// CreateLecturerRequest is the body of POST /lecturers.
// An empty id gets a generated 9-digit one.
type CreateLecturerRequest struct {
	ID             string   `json:"id" binding:"omitempty,nationalid" example:"349285839"`
	Name           string   `json:"name" binding:"required,min=2,max=100"`
	Email          string   `json:"email" binding:"required,looseemail"`
	Specialization string   `json:"specialization" binding:"max=200"`
	Courses        []string `json:"courses"`
	Semesters      []int    `json:"semesters"`
}

// UpdateLecturerRequest is the body of PUT /lecturers/:id
type UpdateLecturerRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Email          string `json:"email" binding:"required,looseemail"`
	Specialization string `json:"specialization" binding:"max=200"`
}

// SetLecturerCoursesRequest is the body of PUT /lecturers/:id/courses
type SetLecturerCoursesRequest struct {
	Courses []string `json:"courses"`
}

// SetLecturerSemestersRequest is the body of PUT /lecturers/:id/semesters
type SetLecturerSemestersRequest struct {
	Semesters []int `json:"semesters"`
}

// LecturerDetailsResponse is a lecturer with its courses resolved
type LecturerDetailsResponse struct {
	Lecturer models.Lecturer `json:"lecturer"`
	Courses  []models.Course `json:"courses"`
}
