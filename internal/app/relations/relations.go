// Package relations keeps the cross references between courses, lecturers,
// students and study files consistent.
//
// Every function works on collection snapshots and returns new slices; the
// inputs are never modified, so callers can compute every affected collection
// before persisting any of them. After each call:
//   - a course's lecturerId is empty or names the single lecturer listing it
//   - every lecturer whose course set changed has semesters derived from its courses
package relations

import (
	"fmt"
	"slices"
	"sort"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
)

// DeriveSemesters returns the sorted distinct semesters of the courses named by courseIDs.
// Unknown course ids are ignored. The result is never nil.
func DeriveSemesters(courseIDs []string, courses []models.Course) []int {
	wanted := make(map[string]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = struct{}{}
	}

	seen := make(map[int]struct{})
	out := []int{}
	for _, c := range courses {
		if _, ok := wanted[c.ID]; !ok {
			continue
		}
		if _, dup := seen[c.Semester]; dup {
			continue
		}
		seen[c.Semester] = struct{}{}
		out = append(out, c.Semester)
	}
	sort.Ints(out)
	return out
}

// FilterSemesters keeps the submitted semesters that the given courses allow,
// sorted and de-duplicated. Values outside the allowed set are dropped silently.
func FilterSemesters(submitted []int, courseIDs []string, courses []models.Course) []int {
	allowed := DeriveSemesters(courseIDs, courses)
	out := []int{}
	for _, s := range allowed {
		if slices.Contains(submitted, s) {
			out = append(out, s)
		}
	}
	return out
}

// AddCourse appends course and attaches it to its lecturer, if any
func AddCourse(courses []models.Course, lecturers []models.Lecturer, course models.Course) ([]models.Course, []models.Lecturer, error) {
	if course.LecturerID != "" && indexLecturer(lecturers, course.LecturerID) < 0 {
		return courses, lecturers, fmt.Errorf("%w: %s", apperrors.ErrLecturerNotFound, course.LecturerID)
	}

	outCourses := append(slices.Clone(courses), course)
	outLecturers := attach(lecturers, outCourses, course.ID, course.LecturerID)
	return outCourses, outLecturers, nil
}

// UpdateCourse replaces the stored course having updated.ID. A lecturer change
// moves the course between lecturers; any semester change is reflected in the
// owning lecturer's semesters.
func UpdateCourse(courses []models.Course, lecturers []models.Lecturer, updated models.Course) ([]models.Course, []models.Lecturer, error) {
	i := indexCourse(courses, updated.ID)
	if i < 0 {
		return courses, lecturers, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, updated.ID)
	}
	if updated.LecturerID != "" && indexLecturer(lecturers, updated.LecturerID) < 0 {
		return courses, lecturers, fmt.Errorf("%w: %s", apperrors.ErrLecturerNotFound, updated.LecturerID)
	}

	outCourses := slices.Clone(courses)
	outCourses[i] = updated
	return outCourses, attach(lecturers, outCourses, updated.ID, updated.LecturerID), nil
}

// AssignCourseLecturer points the course at lecturerID (empty to unassign).
// The course leaves its previous lecturer's list and joins the new one.
func AssignCourseLecturer(courses []models.Course, lecturers []models.Lecturer, courseID, lecturerID string) ([]models.Course, []models.Lecturer, error) {
	i := indexCourse(courses, courseID)
	if i < 0 {
		return courses, lecturers, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, courseID)
	}

	updated := courses[i]
	updated.LecturerID = lecturerID
	return UpdateCourse(courses, lecturers, updated)
}

// RemoveCourse drops the course and removes its id from every lecturer.
// Students, files and view counts are left alone.
func RemoveCourse(courses []models.Course, lecturers []models.Lecturer, courseID string) ([]models.Course, []models.Lecturer, error) {
	i := indexCourse(courses, courseID)
	if i < 0 {
		return courses, lecturers, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, courseID)
	}

	outCourses := slices.Delete(slices.Clone(courses), i, i+1)
	outLecturers := slices.Clone(lecturers)
	for j, l := range outLecturers {
		if l.Teaches(courseID) {
			outLecturers[j] = withCourses(l, without(l.Courses, courseID), outCourses)
		}
	}
	return outCourses, outLecturers, nil
}

// AddLecturer appends lecturer and makes it the owner of the courses it lists.
// Submitted semesters are kept where the courses allow them.
func AddLecturer(lecturers []models.Lecturer, courses []models.Course, lecturer models.Lecturer) ([]models.Lecturer, []models.Course, error) {
	requested := lecturer.Semesters
	lecturer.Courses = KnownCourseIDs(lecturer.Courses, courses)
	lecturer.Semesters = []int{}

	outLecturers := append(slices.Clone(lecturers), lecturer)
	outLecturers, outCourses, err := SetLecturerCourses(outLecturers, courses, lecturer.ID, lecturer.Courses)
	if err != nil {
		return lecturers, courses, err
	}

	if len(requested) > 0 {
		i := indexLecturer(outLecturers, lecturer.ID)
		outLecturers[i].Semesters = FilterSemesters(requested, outLecturers[i].Courses, outCourses)
	}
	return outLecturers, outCourses, nil
}

// RemoveLecturer deletes a non-permanent lecturer and clears lecturerId on the
// courses it taught. Permanent lecturers are rejected with nothing changed.
func RemoveLecturer(lecturers []models.Lecturer, courses []models.Course, lecturerID string) ([]models.Lecturer, []models.Course, error) {
	if models.IsPermanentLecturer(lecturerID) {
		return lecturers, courses, fmt.Errorf("%w: %s", apperrors.ErrPermanentLecturer, lecturerID)
	}
	i := indexLecturer(lecturers, lecturerID)
	if i < 0 {
		return lecturers, courses, fmt.Errorf("%w: %s", apperrors.ErrLecturerNotFound, lecturerID)
	}

	outLecturers := slices.Delete(slices.Clone(lecturers), i, i+1)
	outCourses := slices.Clone(courses)
	for j, c := range outCourses {
		if c.LecturerID == lecturerID {
			outCourses[j].LecturerID = ""
		}
	}
	return outLecturers, outCourses, nil
}

// SetLecturerCourses makes courseIDs the lecturer's exact course set.
// Newly included courses point at the lecturer and leave their previous
// lecturer; dropped courses owned by this lecturer become unassigned.
// Semesters of every lecturer touched are recomputed.
func SetLecturerCourses(lecturers []models.Lecturer, courses []models.Course, lecturerID string, courseIDs []string) ([]models.Lecturer, []models.Course, error) {
	li := indexLecturer(lecturers, lecturerID)
	if li < 0 {
		return lecturers, courses, fmt.Errorf("%w: %s", apperrors.ErrLecturerNotFound, lecturerID)
	}
	target := KnownCourseIDs(courseIDs, courses)

	outCourses := slices.Clone(courses)
	for i, c := range outCourses {
		switch {
		case slices.Contains(target, c.ID):
			outCourses[i].LecturerID = lecturerID
		case c.LecturerID == lecturerID:
			outCourses[i].LecturerID = ""
		}
	}

	outLecturers := slices.Clone(lecturers)
	for i, l := range outLecturers {
		if i == li {
			outLecturers[i] = withCourses(l, target, outCourses)
			continue
		}
		kept := l.Courses[:0:0]
		for _, id := range l.Courses {
			if !slices.Contains(target, id) {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(l.Courses) {
			outLecturers[i] = withCourses(l, kept, outCourses)
		}
	}
	return outLecturers, outCourses, nil
}

// SetLecturerSemesters stores the submitted semesters the lecturer's courses allow
func SetLecturerSemesters(lecturers []models.Lecturer, courses []models.Course, lecturerID string, semesters []int) ([]models.Lecturer, error) {
	i := indexLecturer(lecturers, lecturerID)
	if i < 0 {
		return lecturers, fmt.Errorf("%w: %s", apperrors.ErrLecturerNotFound, lecturerID)
	}

	out := slices.Clone(lecturers)
	out[i].Semesters = FilterSemesters(semesters, out[i].Courses, courses)
	return out, nil
}

// CourseRoster returns the students enrolled in course, reconciling the
// student side courseIds with the course's legacy studentIds list.
// Each student appears once, in collection order.
func CourseRoster(course models.Course, students []models.Student) []models.Student {
	out := []models.Student{}
	for _, s := range students {
		if s.IsEnrolled(course.ID) || slices.Contains(course.StudentIDs, s.ID) {
			out = append(out, s)
		}
	}
	return out
}

// CourseFiles returns the study files whose courseId names courseID
func CourseFiles(courseID string, files []models.StudyFile) []models.StudyFile {
	out := []models.StudyFile{}
	for _, f := range files {
		if f.CourseID == courseID {
			out = append(out, f)
		}
	}
	return out
}

// LecturerCourses resolves the lecturer's course ids, skipping unknown ones
func LecturerCourses(lecturer models.Lecturer, courses []models.Course) []models.Course {
	out := []models.Course{}
	for _, id := range lecturer.Courses {
		if i := indexCourse(courses, id); i >= 0 {
			out = append(out, courses[i])
		}
	}
	return out
}

// attach makes ownerID the only lecturer listing courseID (none when ownerID
// is empty) and recomputes semesters for the owner and every lecturer that
// lost the course
func attach(lecturers []models.Lecturer, courses []models.Course, courseID, ownerID string) []models.Lecturer {
	out := slices.Clone(lecturers)
	for i, l := range out {
		switch {
		case l.ID == ownerID:
			ids := l.Courses
			if !l.Teaches(courseID) {
				ids = append(slices.Clone(l.Courses), courseID)
			}
			out[i] = withCourses(l, ids, courses)
		case l.Teaches(courseID):
			out[i] = withCourses(l, without(l.Courses, courseID), courses)
		}
	}
	return out
}

// withCourses returns l with a copy of ids and semesters derived from them
func withCourses(l models.Lecturer, ids []string, courses []models.Course) models.Lecturer {
	l.Courses = append([]string{}, ids...)
	l.Semesters = DeriveSemesters(l.Courses, courses)
	return l
}

// KnownCourseIDs de-duplicates ids and keeps those naming a known course
func KnownCourseIDs(ids []string, courses []models.Course) []string {
	out := []string{}
	for _, id := range ids {
		if slices.Contains(out, id) || indexCourse(courses, id) < 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func indexCourse(courses []models.Course, id string) int {
	return slices.IndexFunc(courses, func(c models.Course) bool { return c.ID == id })
}

func indexLecturer(lecturers []models.Lecturer, id string) int {
	return slices.IndexFunc(lecturers, func(l models.Lecturer) bool { return l.ID == id })
}
