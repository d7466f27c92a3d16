package models

import "github.com/goccy/go-json"

// Course is a course in the catalogue
type Course struct {
	ID          string  `json:"id" example:"crs_1718000000000_42"`
	Name        string  `json:"name" example:"Introduction to Computer Science"`
	Code        string  `json:"code" example:"CS101"`
	Description string  `json:"description"`
	Semester    int     `json:"semester" example:"1"`
	LecturerID  string  `json:"lecturerId"` // Empty when unassigned
	Views       Counter `json:"views"`

	// Legacy roster, read but never treated as authoritative
	StudentIDs []string `json:"studentIds,omitempty"`
	// Legacy inline copies of study files, each with its own counter
	Files []StudyFile `json:"files,omitempty"`
}

// UnmarshalJSON accepts legacy semesters stored as strings
func (c *Course) UnmarshalJSON(data []byte) error {
	type plain Course
	var aux struct {
		plain
		Semester semesterValue `json:"semester"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Course(aux.plain)
	c.Semester = int(aux.Semester)
	return nil
}
