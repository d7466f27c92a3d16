package dto

import "github.com/Taha-Code-Hup/OnoTime/internal/app/models"

// CourseRequest is the body of POST /courses and PUT /courses/:id
type CourseRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"Data Structures"`
	Code        string `json:"code" binding:"required,max=20" example:"CS201"`
	Description string `json:"description" binding:"max=2000"`
	Semester    int    `json:"semester" binding:"required,min=1,max=99" example:"2"`
	LecturerID  string `json:"lecturerId" example:"183483748"`
}

// AssignLecturerRequest is the body of PUT /courses/:id/lecturer; empty unassigns
type AssignLecturerRequest struct {
	LecturerID string `json:"lecturerId"`
}

// ViewRequest identifies the page visit a view belongs to
type ViewRequest struct {
	VisitID  string `json:"visitId" example:"b7f9c0d2-visit"`
	CourseID string `json:"courseId"` // Only for file views
}

// CourseDetailsResponse is a course with its references resolved
type CourseDetailsResponse struct {
	Course   models.Course    `json:"course"`
	Lecturer *models.Lecturer `json:"lecturer,omitempty"`
	Students []models.Student `json:"students"`
	Files    []CourseFileView `json:"files"`
}

// CourseFileView is a study file with its uploader's display name
type CourseFileView struct {
	models.StudyFile
	UploaderName string `json:"uploaderName"`
}
