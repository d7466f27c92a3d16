package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/session"
	"github.com/Taha-Code-Hup/OnoTime/internal/config"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
	"github.com/rs/zerolog"
)

func newTestServices(t *testing.T) (*Services, *repositories.Repositories) {
	t.Helper()
	store := kvstore.NewStore(kvstore.NewMemoryBackend(0), zerolog.Nop())
	repos := repositories.NewRepositories(store)

	cfg := &config.Config{}
	cfg.Views.VisitCapacity = 100
	cfg.Views.VisitTTL = time.Minute

	sessions := session.NewManager([]byte("test-secret-test-secret-test-sec"), false, zerolog.Nop())
	return NewServices(repos, sessions, cfg, zerolog.Nop()), repos
}

func mustCourse(t *testing.T, svc *Services, code string, semester int, lecturerID string) models.Course {
	t.Helper()
	c, err := svc.Courses.CreateCourse(context.Background(), dto.CourseRequest{
		Name:       "Course " + code,
		Code:       code,
		Semester:   semester,
		LecturerID: lecturerID,
	})
	if err != nil {
		t.Fatalf("create course %s: %v", code, err)
	}
	return c
}

func TestCourseCodeUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)

	first := mustCourse(t, svc, "CS101", 1, "")
	other := mustCourse(t, svc, "CS102", 1, "")

	if _, err := svc.Courses.CreateCourse(ctx, dto.CourseRequest{Name: "Dup", Code: " cs101 ", Semester: 1}); !errors.Is(err, apperrors.ErrDuplicateCourseCode) {
		t.Fatalf("create duplicate: err = %v", err)
	}
	if _, err := svc.Courses.UpdateCourse(ctx, other.ID, dto.CourseRequest{Name: "x", Code: "Cs101", Semester: 1}); !errors.Is(err, apperrors.ErrDuplicateCourseCode) {
		t.Fatalf("rename onto existing code: err = %v", err)
	}
	if _, err := svc.Courses.UpdateCourse(ctx, first.ID, dto.CourseRequest{Name: "Renamed", Code: "cs101", Semester: 2}); err != nil {
		t.Fatalf("editing own code: %v", err)
	}

	if n := len(svc.Courses.GetAllCourses(ctx)); n != 2 {
		t.Fatalf("courses = %d, want 2", n)
	}
}

func TestStudentIDUnique(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)
	course := mustCourse(t, svc, "CS101", 1, "")

	req := dto.CreateStudentRequest{
		ID:        "123456789",
		FullName:  "Daniel Cohen",
		Email:     "daniel@example.com",
		Semester:  2,
		CourseIDs: []string{course.ID, "missing", course.ID},
	}
	s, err := svc.Students.CreateStudent(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.CourseIDs) != 1 || s.CourseIDs[0] != course.ID {
		t.Errorf("courseIds = %v, want only %s", s.CourseIDs, course.ID)
	}

	if _, err := svc.Students.CreateStudent(ctx, req); !errors.Is(err, apperrors.ErrDuplicateStudentID) {
		t.Fatalf("duplicate id: err = %v", err)
	}
	if n := len(svc.Students.GetAllStudents(ctx)); n != 1 {
		t.Fatalf("students = %d, want 1", n)
	}

	updated, err := svc.Students.UpdateStudent(ctx, "123456789", dto.UpdateStudentRequest{FullName: "Dan Cohen", Email: "dan@example.com", Semester: 3})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != "123456789" || updated.FullName != "Dan Cohen" || len(updated.CourseIDs) != 0 {
		t.Errorf("updated = %+v", updated)
	}

	if err := svc.Students.DeleteStudent(ctx, "123456789"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Students.GetStudentByID(ctx, "123456789"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("after delete: err = %v", err)
	}
}

func TestCourseViewCountedOncePerVisit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)
	course := mustCourse(t, svc, "CS101", 1, "")

	steps := []struct {
		visit   string
		counted bool
		views   int
	}{
		{"visit-1", true, 1},
		{"visit-1", false, 1},
		{"visit-2", true, 2},
		{"", true, 3},
		{"", true, 4},
	}
	for i, step := range steps {
		got, err := svc.Views.IncrementCourseView(ctx, course.ID, step.visit)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got.Counted != step.counted || got.Views != step.views {
			t.Fatalf("step %d: got %+v, want counted=%v views=%d", i, got, step.counted, step.views)
		}
	}

	if _, err := svc.Views.IncrementCourseView(ctx, "missing", "visit-3"); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("missing course: err = %v", err)
	}
}

func TestConcurrentViewsAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)
	course := mustCourse(t, svc, "CS101", 1, "")

	const workers = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Views.IncrementCourseView(ctx, course.ID, ""); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	got, _ := svc.Courses.GetCourseByID(ctx, course.ID)
	if got.Views.Int() != workers {
		t.Fatalf("views = %d, want %d", got.Views.Int(), workers)
	}
}

func TestFileViewsAggregateInlineAndStandalone(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestServices(t)

	repos.Courses.SaveAll(ctx, []models.Course{{
		ID: "c1", Name: "Algorithms", Code: "CS301", Semester: 3,
		Files: []models.StudyFile{{ID: "f1", Name: "Slides", CourseID: "c1", Views: 3}},
	}})
	repos.Files.SaveAll(ctx, []models.StudyFile{{ID: "f1", Name: "Slides", CourseID: "c1", Views: 2}})

	popular := svc.Popularity.GetPopular(ctx, 5)
	if len(popular.TopFiles) != 1 || popular.TopFiles[0].Views != 5 {
		t.Fatalf("top files = %+v, want f1 with 5 views", popular.TopFiles)
	}
	if names := popular.TopFiles[0].CourseNames; len(names) != 1 || names[0] != "Algorithms" {
		t.Errorf("course names = %v", names)
	}

	got, err := svc.Views.IncrementFileView(ctx, "f1", "", "visit-1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Counted || got.Views != 3 {
		t.Fatalf("increment = %+v, want standalone views 3", got)
	}

	popular = svc.Popularity.GetPopular(ctx, 5)
	if popular.TopFiles[0].Views != 7 {
		t.Fatalf("aggregate after increment = %d, want 7", popular.TopFiles[0].Views)
	}

	if _, err := svc.Views.IncrementFileView(ctx, "nope", "c1", ""); !errors.Is(err, apperrors.ErrFileNotFound) {
		t.Fatalf("missing file: err = %v", err)
	}
}

func TestPopularCoursesResolveLecturer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)

	lecturer := svc.Lecturers.GetAllLecturers(ctx)[0]
	a := mustCourse(t, svc, "CS101", 1, lecturer.ID)
	b := mustCourse(t, svc, "CS201", 2, "")
	for _, visit := range []string{"1", "2"} {
		if _, err := svc.Views.IncrementCourseView(ctx, b.ID, visit); err != nil {
			t.Fatal(err)
		}
	}

	got := svc.Popularity.GetPopular(ctx, 0).TopCourses
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Fatalf("top courses = %+v", got)
	}
	if got[1].LecturerName != lecturer.Name {
		t.Errorf("lecturer name = %q, want %q", got[1].LecturerName, lecturer.Name)
	}
}

func TestPopularDefaultsToTopTen(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)
	for i := 0; i < 12; i++ {
		mustCourse(t, svc, fmt.Sprintf("CS%d", 100+i), 1, "")
	}

	if got := svc.Popularity.GetPopular(ctx, 0).TopCourses; len(got) != DefaultTop || DefaultTop != 10 {
		t.Fatalf("default ranking size = %d", len(got))
	}
	if got := svc.Popularity.GetPopular(ctx, 3).TopCourses; len(got) != 3 {
		t.Fatalf("top 3 = %d", len(got))
	}
}

func TestFileRequiresExistingCourse(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)
	course := mustCourse(t, svc, "CS101", 1, "")

	req := dto.FileRequest{Name: "Notes", Type: "pdf", FileURL: "https://example.com/a.pdf"}
	if _, err := svc.Files.CreateFile(ctx, req, ""); !errors.Is(err, apperrors.ErrCourseRequired) {
		t.Fatalf("no course: err = %v", err)
	}
	req.CourseID = "missing"
	if _, err := svc.Files.CreateFile(ctx, req, ""); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("unknown course: err = %v", err)
	}

	req.CourseID = course.ID
	f, err := svc.Files.CreateFile(ctx, req, "user_1_42")
	if err != nil {
		t.Fatal(err)
	}
	if f.Status != models.FileStatusPending || f.UploaderID != "user_1_42" {
		t.Errorf("file = %+v", f)
	}

	approved, err := svc.Files.UpdateFileStatus(ctx, f.ID, models.FileStatusApproved)
	if err != nil || approved.Status != models.FileStatusApproved {
		t.Fatalf("status update = %+v, %v", approved, err)
	}

	stored, _ := svc.Courses.GetCourseByID(ctx, course.ID)
	if len(stored.Files) != 0 {
		t.Fatalf("file copied inline: %+v", stored.Files)
	}

	details, err := svc.Courses.GetCourseDetails(ctx, course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(details.Files) != 1 || details.Files[0].UploaderName != "42" {
		t.Fatalf("details files = %+v", details.Files)
	}

	if err := svc.Files.DeleteFile(ctx, f.ID); err != nil {
		t.Fatal(err)
	}
	if len(svc.Files.GetAllFiles(ctx)) != 0 {
		t.Fatal("file not deleted")
	}
}

func TestLecturerCourseScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)

	c1 := mustCourse(t, svc, "CS101", 1, "")
	c2 := mustCourse(t, svc, "CS201", 2, "")

	l, err := svc.Lecturers.CreateLecturer(ctx, dto.CreateLecturerRequest{
		ID:        "111111111",
		Name:      "Dr. Test",
		Email:     "test@example.com",
		Courses:   []string{c1.ID, c2.ID},
		Semesters: []int{2, 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Semesters) != 1 || l.Semesters[0] != 2 {
		t.Fatalf("semesters = %v, want [2]", l.Semesters)
	}

	if _, err := svc.Lecturers.CreateLecturer(ctx, dto.CreateLecturerRequest{ID: "111111111", Name: "Dup", Email: "d@example.com"}); !errors.Is(err, apperrors.ErrDuplicateLecturerID) {
		t.Fatalf("duplicate lecturer: err = %v", err)
	}

	other := svc.Lecturers.GetAllLecturers(ctx)[0]
	if _, err := svc.Courses.AssignLecturer(ctx, c1.ID, other.ID); err != nil {
		t.Fatal(err)
	}

	l, _ = svc.Lecturers.GetLecturerByID(ctx, "111111111")
	if len(l.Courses) != 1 || l.Courses[0] != c2.ID {
		t.Fatalf("lecturer courses = %v, want [%s]", l.Courses, c2.ID)
	}
	other, _ = svc.Lecturers.GetLecturerByID(ctx, other.ID)
	if !other.Teaches(c1.ID) || len(other.Semesters) != 1 || other.Semesters[0] != 1 {
		t.Fatalf("new owner = %+v", other)
	}

	if err := svc.Lecturers.DeleteLecturer(ctx, "111111111"); err != nil {
		t.Fatal(err)
	}
	got, _ := svc.Courses.GetCourseByID(ctx, c2.ID)
	if got.LecturerID != "" {
		t.Fatalf("course still references deleted lecturer: %q", got.LecturerID)
	}

	if err := svc.Courses.DeleteCourse(ctx, c1.ID); err != nil {
		t.Fatal(err)
	}
	other, _ = svc.Lecturers.GetLecturerByID(ctx, other.ID)
	if other.Teaches(c1.ID) || len(other.Semesters) != 0 {
		t.Fatalf("deleted course left on lecturer: %+v", other)
	}
}

func TestPermanentLecturers(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestServices(t)

	all := svc.Lecturers.GetAllLecturers(ctx)
	if len(all) != len(models.PermanentLecturers()) {
		t.Fatalf("lecturers = %d, want the permanent set", len(all))
	}
	permanent := all[0]

	if err := svc.Lecturers.DeleteLecturer(ctx, permanent.ID); !errors.Is(err, apperrors.ErrPermanentLecturer) {
		t.Fatalf("delete permanent: err = %v", err)
	}
	if saved := repos.Lecturers.LoadAll(ctx); len(saved) != len(all) {
		t.Fatalf("rejected delete changed the collection: %d lecturers", len(saved))
	}

	if _, err := svc.Lecturers.UpdateLecturer(ctx, permanent.ID, dto.UpdateLecturerRequest{Name: permanent.Name, Email: "new@example.com"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Lecturers.CreateLecturer(ctx, dto.CreateLecturerRequest{Name: "Added", Email: "added@example.com"}); err != nil {
		t.Fatal(err)
	}

	all = svc.Lecturers.GetAllLecturers(ctx)
	if len(all) != len(models.PermanentLecturers())+1 {
		t.Fatalf("lecturers = %d after add", len(all))
	}
	if all[0].Email != "new@example.com" {
		t.Fatalf("edited permanent lecturer lost: %+v", all[0])
	}
	if id := all[len(all)-1].ID; len(id) != 9 {
		t.Fatalf("generated id %q is not 9 digits", id)
	}
}

func TestGenerateRandomRecords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t)
	mustCourse(t, svc, "CS101", 1, "")

	if _, err := svc.Courses.GenerateRandomCourse(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Students.GenerateRandomStudent(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Lecturers.GenerateRandomLecturer(ctx); err != nil {
		t.Fatal(err)
	}
	f, err := svc.Files.GenerateRandomFile(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if f.UploaderID == "" || f.CourseID == "" {
		t.Fatalf("random file = %+v", f)
	}
}

func TestGenerateRandomConcurrently(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestServices(t)
	mustCourse(t, svc, "CS101", 1, "")

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			// A rare code collision after every retry is tolerated here
			_, _ = svc.Courses.GenerateRandomCourse(ctx)
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.Files.GenerateRandomFile(ctx, ""); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n := len(repos.Files.LoadAll(ctx)); n != 25 {
		t.Fatalf("files = %d, want 25", n)
	}
}

func TestLegacyRecordsSurviveMutation(t *testing.T) {
	ctx := context.Background()
	backend := kvstore.NewMemoryBackend(0)
	legacy := `[{"id":"c1","name":"Algorithms","code":"CS201","semester":1,"views":4},` +
		`{"id":"c2","name":"Seminar","code":"SEM1","semester":"2025A"}]`
	if err := backend.Set(ctx, repositories.CoursesKey, []byte(legacy)); err != nil {
		t.Fatal(err)
	}

	store := kvstore.NewStore(backend, zerolog.Nop())
	repos := repositories.NewRepositories(store)
	cfg := &config.Config{}
	cfg.Views.VisitCapacity = 10
	sessions := session.NewManager([]byte("test-secret-test-secret-test-sec"), false, zerolog.Nop())
	svc := NewServices(repos, sessions, cfg, zerolog.Nop())

	if _, err := svc.Courses.CreateCourse(ctx, dto.CourseRequest{Name: "New", Code: "CS999", Semester: 2}); err != nil {
		t.Fatal(err)
	}

	courses := repos.Courses.LoadAll(ctx)
	if len(courses) != 3 {
		t.Fatalf("courses after create = %d, want 3", len(courses))
	}
	if courses[0].Views != 4 || courses[1].ID != "c2" || courses[1].Semester != 0 {
		t.Fatalf("legacy courses = %+v", courses[:2])
	}
}

func TestBlankFieldsRejected(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestServices(t)
	course := mustCourse(t, svc, "CS101", 1, "")
	student, err := svc.Students.CreateStudent(ctx, dto.CreateStudentRequest{ID: "123456789", FullName: "Dana", Email: "d@example.com", Semester: 1})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"course name", func() error {
			_, err := svc.Courses.CreateCourse(ctx, dto.CourseRequest{Name: "  ", Code: "CS2", Semester: 1})
			return err
		}, "name"},
		{"course code on update", func() error {
			_, err := svc.Courses.UpdateCourse(ctx, course.ID, dto.CourseRequest{Name: "Intro", Code: "\t", Semester: 1})
			return err
		}, "code"},
		{"student name", func() error {
			_, err := svc.Students.UpdateStudent(ctx, student.ID, dto.UpdateStudentRequest{FullName: " ", Email: "d@example.com", Semester: 1})
			return err
		}, "fullName"},
		{"lecturer email", func() error {
			_, err := svc.Lecturers.CreateLecturer(ctx, dto.CreateLecturerRequest{Name: "Dr. Levi", Email: "   "})
			return err
		}, "email"},
		{"file url", func() error {
			_, err := svc.Files.CreateFile(ctx, dto.FileRequest{Name: "Slides", Type: "pdf", FileURL: " ", CourseID: course.ID}, "")
			return err
		}, "fileUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var custom *apperrors.CustomError
			if !errors.As(err, &custom) || custom.Field != tt.field || !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("err = %v, want validation error on %s", err, tt.field)
			}
		})
	}

	if got := repos.Courses.LoadAll(ctx); len(got) != 1 || got[0].Code != "CS101" {
		t.Fatalf("courses changed: %+v", got)
	}
	if got := repos.Files.LoadAll(ctx); len(got) != 0 {
		t.Fatalf("files written: %+v", got)
	}
}

func TestUploaderName(t *testing.T) {
	students := []models.Student{{ID: "123456789", FullName: "Daniel Cohen"}}
	lecturers := []models.Lecturer{{ID: "987654321", Name: "Dr. Levi"}}

	tests := []struct {
		id   string
		want string
	}{
		{"", "Unknown"},
		{"123456789", "Daniel Cohen"},
		{"987654321", "Dr. Levi"},
		{"uploader_1718000000000_125331637", "125331637"},
		{"guest_abc", "abc"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := uploaderName(tt.id, students, lecturers); got != tt.want {
			t.Errorf("uploaderName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
