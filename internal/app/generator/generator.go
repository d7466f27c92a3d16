// Package generator produces random sample records for the "Generate Random" actions.
package generator

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
)

// maxIDAttempts bounds the search for an unused national id
const maxIDAttempts = 5

// Generator draws random records from its own source.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator creates a generator seeded from the clock
func NewGenerator() *Generator {
	seed := uint64(time.Now().UnixNano())
	return NewSeededGenerator(seed, seed>>1)
}

// NewSeededGenerator creates a deterministic generator
func NewSeededGenerator(seed1, seed2 uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

// nationalID requires g.mu
func (g *Generator) nationalID() string {
	return strconv.Itoa(100_000_000 + g.rnd.IntN(900_000_000))
}

// Student returns a student enrolled in a random non-empty subset of courses.
// It tries a few national ids not reported by taken and gives up with the
// last candidate, leaving the duplicate check to the caller.
func (g *Generator) Student(courses []models.Course, taken func(id string) bool) models.Student {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nationalID()
	for attempt := 1; attempt < maxIDAttempts && taken != nil && taken(id); attempt++ {
		id = g.nationalID()
	}

	courseIDs := []string{}
	if len(courses) > 0 {
		perm := g.rnd.Perm(len(courses))
		count := g.rnd.IntN(len(courses)) + 1
		for _, i := range perm[:count] {
			courseIDs = append(courseIDs, courses[i].ID)
		}
	}

	return models.Student{
		ID:        id,
		FullName:  fmt.Sprintf("Student %d", g.rnd.IntN(100)),
		Email:     fmt.Sprintf("student%d@example.com", g.rnd.IntN(100)),
		Semester:  g.rnd.IntN(8) + 1,
		CourseIDs: courseIDs,
	}
}

// Course returns a course in semester 1..8 taught by a random lecturer, if any.
// The id is left for the caller to assign.
func (g *Generator) Course(lecturers []models.Lecturer) models.Course {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.rnd.IntN(1000)
	course := models.Course{
		Name:        fmt.Sprintf("Course %d", n),
		Code:        fmt.Sprintf("C%d", n),
		Description: "Sample course with a short description.",
		Semester:    g.rnd.IntN(8) + 1,
	}
	if len(lecturers) > 0 {
		course.LecturerID = lecturers[g.rnd.IntN(len(lecturers))].ID
	}
	return course
}

// Lecturer returns a lecturer teaching one or two random courses.
// Semesters are left empty; they are derived from the courses on insert.
func (g *Generator) Lecturer(courses []models.Course) models.Lecturer {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.rnd.IntN(1000)
	lecturer := models.Lecturer{
		ID:        g.nationalID(),
		Name:      fmt.Sprintf("Lecturer %d", n),
		Email:     fmt.Sprintf("lect%d@example.com", n),
		Courses:   []string{},
		Semesters: []int{},
	}

	if len(courses) > 0 {
		first := courses[g.rnd.IntN(len(courses))].ID
		lecturer.Courses = append(lecturer.Courses, first)
		if len(courses) > 1 && g.rnd.Float64() > 0.5 {
			if second := courses[g.rnd.IntN(len(courses))].ID; second != first {
				lecturer.Courses = append(lecturer.Courses, second)
			}
		}
	}
	return lecturer
}

// File returns a study file attached to a random course, if any.
// The id and uploader are left for the caller to assign.
func (g *Generator) File(courses []models.Course) models.StudyFile {
	g.mu.Lock()
	defer g.mu.Unlock()

	fileType := models.FileTypes[g.rnd.IntN(len(models.FileTypes))]
	url := "https://example.com/sample.pdf"
	if fileType == models.FileTypeLink {
		url = "https://example.com"
	}

	file := models.StudyFile{
		Name:        fmt.Sprintf("File %d", g.rnd.IntN(1000)),
		Description: "Sample file",
		Type:        fileType,
		FileURL:     url,
		Status:      models.FileStatuses[g.rnd.IntN(len(models.FileStatuses))],
	}
	if len(courses) > 0 {
		file.CourseID = courses[g.rnd.IntN(len(courses))].ID
	}
	return file
}
