package models

import "github.com/goccy/go-json"

// Student is identified by a 9-digit national id
type Student struct {
	ID        string   `json:"id" example:"123456789"`
	FullName  string   `json:"fullName" example:"Daniel Cohen"`
	Email     string   `json:"email" example:"daniel@example.com"`
	Semester  int      `json:"semester" example:"3"`
	CourseIDs []string `json:"courseIds"` // Authoritative enrollment direction
}

// IsEnrolled reports whether the student lists courseID
func (s Student) IsEnrolled(courseID string) bool {
	for _, id := range s.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts legacy semesters stored as strings
func (s *Student) UnmarshalJSON(data []byte) error {
	type plain Student
	var aux struct {
		plain
		Semester semesterValue `json:"semester"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Student(aux.plain)
	s.Semester = int(aux.Semester)
	return nil
}
