package relations

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
)

// checkConsistency asserts the symmetry and derived-semesters invariants
func checkConsistency(t *testing.T, courses []models.Course, lecturers []models.Lecturer) {
	t.Helper()

	for _, c := range courses {
		holders := 0
		for _, l := range lecturers {
			if l.Teaches(c.ID) {
				holders++
				if l.ID != c.LecturerID {
					t.Errorf("course %s listed by %s but lecturerId is %q", c.ID, l.ID, c.LecturerID)
				}
			}
		}
		if c.LecturerID != "" && holders != 1 {
			t.Errorf("course %s with lecturer %s is listed by %d lecturers", c.ID, c.LecturerID, holders)
		}
		if c.LecturerID == "" && holders != 0 {
			t.Errorf("unassigned course %s is listed by %d lecturers", c.ID, holders)
		}
	}

	for _, l := range lecturers {
		if want := DeriveSemesters(l.Courses, courses); !reflect.DeepEqual(l.Semesters, want) {
			t.Errorf("lecturer %s semesters = %v, want %v", l.ID, l.Semesters, want)
		}
	}
}

func findLecturer(t *testing.T, lecturers []models.Lecturer, id string) models.Lecturer {
	t.Helper()
	for _, l := range lecturers {
		if l.ID == id {
			return l
		}
	}
	t.Fatalf("lecturer %s not found", id)
	return models.Lecturer{}
}

func findCourse(t *testing.T, courses []models.Course, id string) models.Course {
	t.Helper()
	for _, c := range courses {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("course %s not found", id)
	return models.Course{}
}

func TestLecturerCourseScenario(t *testing.T) {
	var courses []models.Course
	lecturers, courses, err := AddLecturer(nil, courses, models.Lecturer{ID: "L", Name: "Lecturer"})
	if err != nil {
		t.Fatal(err)
	}

	courses, lecturers, err = AddCourse(courses, lecturers, models.Course{ID: "C", Code: "CS1", Semester: 2, LecturerID: "L"})
	if err != nil {
		t.Fatal(err)
	}
	l := findLecturer(t, lecturers, "L")
	if !reflect.DeepEqual(l.Courses, []string{"C"}) || !reflect.DeepEqual(l.Semesters, []int{2}) {
		t.Fatalf("after create: courses=%v semesters=%v", l.Courses, l.Semesters)
	}

	courses, lecturers, err = AddCourse(courses, lecturers, models.Course{ID: "C2", Code: "CS2", Semester: 5})
	if err != nil {
		t.Fatal(err)
	}
	courses, lecturers, err = AssignCourseLecturer(courses, lecturers, "C2", "L")
	if err != nil {
		t.Fatal(err)
	}
	if l := findLecturer(t, lecturers, "L"); !reflect.DeepEqual(l.Semesters, []int{2, 5}) {
		t.Fatalf("after assigning C2: semesters=%v", l.Semesters)
	}

	courses, lecturers, err = AssignCourseLecturer(courses, lecturers, "C", "")
	if err != nil {
		t.Fatal(err)
	}
	if c := findCourse(t, courses, "C"); c.LecturerID != "" {
		t.Fatalf("C.lecturerId = %q", c.LecturerID)
	}
	l = findLecturer(t, lecturers, "L")
	if !reflect.DeepEqual(l.Courses, []string{"C2"}) || !reflect.DeepEqual(l.Semesters, []int{5}) {
		t.Fatalf("after unassign: courses=%v semesters=%v", l.Courses, l.Semesters)
	}
	checkConsistency(t, courses, lecturers)
}

func TestAssignMovesCourseBetweenLecturers(t *testing.T) {
	courses := []models.Course{{ID: "c1", Semester: 1, LecturerID: "a"}, {ID: "c2", Semester: 3, LecturerID: "a"}}
	lecturers := []models.Lecturer{
		{ID: "a", Courses: []string{"c1", "c2"}, Semesters: []int{1, 3}},
		{ID: "b", Courses: []string{}, Semesters: []int{}},
	}

	newCourses, newLecturers, err := AssignCourseLecturer(courses, lecturers, "c2", "b")
	if err != nil {
		t.Fatal(err)
	}

	if a := findLecturer(t, newLecturers, "a"); !reflect.DeepEqual(a.Courses, []string{"c1"}) || !reflect.DeepEqual(a.Semesters, []int{1}) {
		t.Errorf("a = %+v", a)
	}
	if b := findLecturer(t, newLecturers, "b"); !reflect.DeepEqual(b.Courses, []string{"c2"}) || !reflect.DeepEqual(b.Semesters, []int{3}) {
		t.Errorf("b = %+v", b)
	}
	checkConsistency(t, newCourses, newLecturers)

	// Inputs are snapshots
	if courses[1].LecturerID != "a" || len(lecturers[0].Courses) != 2 || len(lecturers[1].Courses) != 0 {
		t.Fatal("input collections were modified")
	}
}

func TestAssignRepairsStaleHolders(t *testing.T) {
	courses := []models.Course{{ID: "c1", Semester: 4, LecturerID: "a"}}
	lecturers := []models.Lecturer{
		{ID: "a", Courses: []string{"c1"}, Semesters: []int{4}},
		{ID: "stale", Courses: []string{"c1"}, Semesters: []int{4}},
		{ID: "b"},
	}

	newCourses, newLecturers, err := AssignCourseLecturer(courses, lecturers, "c1", "b")
	if err != nil {
		t.Fatal(err)
	}
	checkConsistency(t, newCourses, newLecturers)
}

func TestAssignUnknownLecturerRejected(t *testing.T) {
	courses := []models.Course{{ID: "c1"}}
	_, _, err := AssignCourseLecturer(courses, nil, "c1", "ghost")
	if !errors.Is(err, apperrors.ErrLecturerNotFound) {
		t.Fatalf("err = %v", err)
	}
	_, _, err = AssignCourseLecturer(courses, nil, "nope", "")
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestRemoveCourseOnlyTouchesLecturerLists(t *testing.T) {
	courses := []models.Course{
		{ID: "c1", Semester: 1, LecturerID: "a", Views: 9},
		{ID: "c2", Semester: 2, LecturerID: "a"},
		{ID: "c3", Semester: 3, LecturerID: "b"},
	}
	lecturers := []models.Lecturer{
		{ID: "a", Name: "A", Courses: []string{"c1", "c2"}, Semesters: []int{1, 2}},
		{ID: "b", Name: "B", Courses: []string{"c3"}, Semesters: []int{3}},
	}

	newCourses, newLecturers, err := RemoveCourse(courses, lecturers, "c1")
	if err != nil {
		t.Fatal(err)
	}

	if len(newCourses) != 2 || newCourses[0].ID != "c2" || newCourses[1].ID != "c3" {
		t.Fatalf("courses = %+v", newCourses)
	}
	if a := findLecturer(t, newLecturers, "a"); !reflect.DeepEqual(a.Courses, []string{"c2"}) || a.Name != "A" {
		t.Errorf("a = %+v", a)
	}
	if b := findLecturer(t, newLecturers, "b"); !reflect.DeepEqual(b, lecturers[1]) {
		t.Errorf("b changed: %+v", b)
	}
	checkConsistency(t, newCourses, newLecturers)
}

func TestRemoveLecturer(t *testing.T) {
	permanentID := models.PermanentLecturers()[0].ID
	courses := []models.Course{
		{ID: "c1", Semester: 1, LecturerID: "x"},
		{ID: "c2", Semester: 2, LecturerID: permanentID},
	}
	lecturers := []models.Lecturer{
		{ID: "x", Courses: []string{"c1"}, Semesters: []int{1}},
		{ID: permanentID, Courses: []string{"c2"}, Semesters: []int{2}},
	}

	t.Run("non-permanent clears course references", func(t *testing.T) {
		newLecturers, newCourses, err := RemoveLecturer(lecturers, courses, "x")
		if err != nil {
			t.Fatal(err)
		}
		if len(newLecturers) != 1 {
			t.Fatalf("lecturers = %+v", newLecturers)
		}
		if c := findCourse(t, newCourses, "c1"); c.LecturerID != "" {
			t.Errorf("c1 still points at %q", c.LecturerID)
		}
		if c := findCourse(t, newCourses, "c2"); c.LecturerID != permanentID {
			t.Errorf("c2 lost its lecturer")
		}
		checkConsistency(t, newCourses, newLecturers)
	})

	t.Run("permanent rejected without change", func(t *testing.T) {
		newLecturers, newCourses, err := RemoveLecturer(lecturers, courses, permanentID)
		if !errors.Is(err, apperrors.ErrPermanentLecturer) {
			t.Fatalf("err = %v", err)
		}
		if !reflect.DeepEqual(newLecturers, lecturers) || !reflect.DeepEqual(newCourses, courses) {
			t.Fatal("state changed on rejected delete")
		}
	})
}

func TestSetLecturerCourses(t *testing.T) {
	courses := []models.Course{
		{ID: "c1", Semester: 1, LecturerID: "a"},
		{ID: "c2", Semester: 2, LecturerID: "b"},
		{ID: "c3", Semester: 2},
	}
	lecturers := []models.Lecturer{
		{ID: "a", Courses: []string{"c1"}, Semesters: []int{1}},
		{ID: "b", Courses: []string{"c2"}, Semesters: []int{2}},
	}

	newLecturers, newCourses, err := SetLecturerCourses(lecturers, courses, "a", []string{"c2", "c3", "c3", "missing"})
	if err != nil {
		t.Fatal(err)
	}

	a := findLecturer(t, newLecturers, "a")
	if !reflect.DeepEqual(a.Courses, []string{"c2", "c3"}) || !reflect.DeepEqual(a.Semesters, []int{2}) {
		t.Errorf("a = %+v", a)
	}
	if b := findLecturer(t, newLecturers, "b"); len(b.Courses) != 0 || len(b.Semesters) != 0 {
		t.Errorf("b = %+v", b)
	}
	if c := findCourse(t, newCourses, "c1"); c.LecturerID != "" {
		t.Errorf("dropped course still points at %q", c.LecturerID)
	}
	checkConsistency(t, newCourses, newLecturers)
}

func TestUpdateCourseSemesterRecomputesOwner(t *testing.T) {
	courses := []models.Course{{ID: "c1", Semester: 1, LecturerID: "a"}}
	lecturers := []models.Lecturer{{ID: "a", Courses: []string{"c1"}, Semesters: []int{1}}}

	updated := courses[0]
	updated.Semester = 6
	newCourses, newLecturers, err := UpdateCourse(courses, lecturers, updated)
	if err != nil {
		t.Fatal(err)
	}
	if a := findLecturer(t, newLecturers, "a"); !reflect.DeepEqual(a.Semesters, []int{6}) {
		t.Fatalf("semesters = %v", a.Semesters)
	}
	checkConsistency(t, newCourses, newLecturers)
}

func TestAddLecturerFiltersSubmittedSemesters(t *testing.T) {
	courses := []models.Course{{ID: "c1", Semester: 1}, {ID: "c2", Semester: 4}}

	lecturers, newCourses, err := AddLecturer(nil, courses, models.Lecturer{
		ID:        "n",
		Courses:   []string{"c1", "c2"},
		Semesters: []int{4, 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	n := findLecturer(t, lecturers, "n")
	if !reflect.DeepEqual(n.Semesters, []int{4}) {
		t.Fatalf("semesters = %v, want [4]", n.Semesters)
	}
	for _, c := range newCourses {
		if c.LecturerID != "n" {
			t.Errorf("course %s lecturer = %q", c.ID, c.LecturerID)
		}
	}
}

func TestFilterSemesters(t *testing.T) {
	courses := []models.Course{{ID: "a", Semester: 3}, {ID: "b", Semester: 1}, {ID: "c", Semester: 3}}

	tests := []struct {
		name      string
		submitted []int
		courseIDs []string
		want      []int
	}{
		{"keeps allowed", []int{3, 1}, []string{"a", "b"}, []int{1, 3}},
		{"drops outside", []int{2, 3, 8}, []string{"a", "c"}, []int{3}},
		{"no courses", []int{1}, nil, []int{}},
		{"nothing submitted", nil, []string{"a"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterSemesters(tt.submitted, tt.courseIDs, courses); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCourseRosterUnionsBothDirections(t *testing.T) {
	course := models.Course{ID: "c1", StudentIDs: []string{"s2", "s3"}}
	students := []models.Student{
		{ID: "s1", CourseIDs: []string{"c1"}},
		{ID: "s2", CourseIDs: []string{"c1"}},
		{ID: "s3"},
		{ID: "s4", CourseIDs: []string{"c9"}},
	}

	roster := CourseRoster(course, students)
	var ids []string
	for _, s := range roster {
		ids = append(ids, s.ID)
	}
	if !reflect.DeepEqual(ids, []string{"s1", "s2", "s3"}) {
		t.Fatalf("roster = %v", ids)
	}
}

func TestCourseFiles(t *testing.T) {
	files := []models.StudyFile{{ID: "f1", CourseID: "c1"}, {ID: "f2", CourseID: "c2"}, {ID: "f3", CourseID: "c1"}}
	got := CourseFiles("c1", files)
	if len(got) != 2 || got[0].ID != "f1" || got[1].ID != "f3" {
		t.Fatalf("got %+v", got)
	}
}
