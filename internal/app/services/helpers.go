package services

import (
	"slices"
	"strings"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
)

// maxGenerateAttempts bounds retries when a random record collides with an existing one
const maxGenerateAttempts = 5

func findStudent(students []models.Student, id string) int {
	return slices.IndexFunc(students, func(s models.Student) bool { return s.ID == id })
}

func findCourse(courses []models.Course, id string) int {
	return slices.IndexFunc(courses, func(c models.Course) bool { return c.ID == id })
}

func findLecturer(lecturers []models.Lecturer, id string) int {
	return slices.IndexFunc(lecturers, func(l models.Lecturer) bool { return l.ID == id })
}

func findFile(files []models.StudyFile, id string) int {
	return slices.IndexFunc(files, func(f models.StudyFile) bool { return f.ID == id })
}

// field pairs a request field's json name with its submitted value
type field struct {
	name  string
	value string
}

// checkNotBlank rejects the first field that holds only whitespace
func checkNotBlank(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperrors.NewValidationError(f.name, f.name+" must not be blank")
		}
	}
	return nil
}

// codeTaken reports whether another course than exceptID uses code, ignoring case
func codeTaken(courses []models.Course, code, exceptID string) bool {
	code = strings.TrimSpace(code)
	for _, c := range courses {
		if c.ID != exceptID && strings.EqualFold(strings.TrimSpace(c.Code), code) {
			return true
		}
	}
	return false
}

// uploaderName resolves an uploader id to a student's full name or a
// lecturer's name, falling back to the numeric tail of the id
func uploaderName(id string, students []models.Student, lecturers []models.Lecturer) string {
	if strings.TrimSpace(id) == "" {
		return "Unknown"
	}
	if i := findStudent(students, id); i >= 0 {
		return students[i].FullName
	}
	if i := findLecturer(lecturers, id); i >= 0 {
		return lecturers[i].Name
	}

	tail := id[strings.LastIndex(id, "_")+1:]
	if tail == "" {
		tail = id
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, tail)
	if digits != "" {
		return digits
	}
	return tail
}
