// Package popularity ranks courses and study files by view count.
package popularity

import (
	"slices"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
)

// FileAggregate is one study file as ranked, with the views of all its copies summed
type FileAggregate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Views       int      `json:"views"`
	CourseIDs   []string `json:"courseIds"`
	CourseNames []string `json:"courseNames"`
}

// TopCourses returns up to n courses by views, highest first.
// Ties keep collection order. n <= 0 returns every course.
func TopCourses(courses []models.Course, n int) []models.Course {
	out := slices.Clone(courses)
	slices.SortStableFunc(out, func(a, b models.Course) int {
		return b.Views.Int() - a.Views.Int()
	})
	return limit(out, n)
}

// TopFiles merges the inline copies under each course's files with the
// standalone files collection and returns up to n aggregates by summed views.
// Entries merge by file id; an entry without id is keyed by course id and name.
// Inline copies are visited first, so ties keep that discovery order.
func TopFiles(courses []models.Course, files []models.StudyFile, n int) []FileAggregate {
	byKey := make(map[string]*FileAggregate)
	var order []*FileAggregate

	courseName := make(map[string]string, len(courses))
	for _, c := range courses {
		courseName[c.ID] = c.Name
	}

	add := func(f models.StudyFile, courseID string) {
		key := f.ID
		if key == "" {
			key = courseID + "::" + f.Name
		}

		entry, ok := byKey[key]
		if !ok {
			entry = &FileAggregate{ID: key, Name: f.Name, CourseIDs: []string{}, CourseNames: []string{}}
			byKey[key] = entry
			order = append(order, entry)
		}
		entry.Views += f.Views.Int()

		if courseID == "" {
			return
		}
		if !slices.Contains(entry.CourseIDs, courseID) {
			entry.CourseIDs = append(entry.CourseIDs, courseID)
		}
		if name, ok := courseName[courseID]; ok && !slices.Contains(entry.CourseNames, name) {
			entry.CourseNames = append(entry.CourseNames, name)
		}
	}

	for _, c := range courses {
		for _, f := range c.Files {
			add(f, c.ID)
		}
	}
	for _, f := range files {
		add(f, f.CourseID)
	}

	out := make([]FileAggregate, len(order))
	for i, e := range order {
		out[i] = *e
	}
	slices.SortStableFunc(out, func(a, b FileAggregate) int {
		return b.Views - a.Views
	})
	return limit(out, n)
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
