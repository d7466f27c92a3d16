package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/generator"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/relations"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/idgen"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
	"github.com/rs/zerolog"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	GetAllCourses(ctx context.Context) []models.Course
	GetCourseByID(ctx context.Context, id string) (models.Course, error)
	CreateCourse(ctx context.Context, req dto.CourseRequest) (models.Course, error)
	UpdateCourse(ctx context.Context, id string, req dto.CourseRequest) (models.Course, error)
	AssignLecturer(ctx context.Context, id, lecturerID string) (models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	GetCourseDetails(ctx context.Context, id string) (dto.CourseDetailsResponse, error)
	GenerateRandomCourse(ctx context.Context) (models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	repos     *repositories.Repositories
	locks     *kvstore.KeyLock
	generator *generator.Generator
	logger    zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(repos *repositories.Repositories, locks *kvstore.KeyLock, gen *generator.Generator, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		repos:     repos,
		locks:     locks,
		generator: gen,
		logger:    logger,
	}
}

// GetAllCourses returns every course in stored order
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) []models.Course {
	return s.repos.Courses.LoadAll(ctx)
}

// GetCourseByID retrieves a course by id
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id string) (models.Course, error) {
	courses := s.repos.Courses.LoadAll(ctx)
	i := findCourse(courses, id)
	if i < 0 {
		return models.Course{}, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, id)
	}
	return courses[i], nil
}

// CreateCourse adds a course with a unique code and attaches it to its lecturer
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req dto.CourseRequest) (models.Course, error) {
	if err := checkNotBlank(field{"name", req.Name}, field{"code", req.Code}); err != nil {
		return models.Course{}, err
	}

	course := models.Course{
		ID:          idgen.Generate("crs"),
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.TrimSpace(req.Code),
		Description: strings.TrimSpace(req.Description),
		Semester:    req.Semester,
		LecturerID:  req.LecturerID,
	}
	return s.insert(ctx, course)
}

func (s *courseServiceImpl) insert(ctx context.Context, course models.Course) (models.Course, error) {
	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	courses := s.repos.Courses.LoadAll(ctx)
	if codeTaken(courses, course.Code, "") {
		return models.Course{}, fmt.Errorf("%w: %s", apperrors.ErrDuplicateCourseCode, course.Code)
	}

	courses, lecturers, err := relations.AddCourse(courses, s.repos.Lecturers.LoadAll(ctx), course)
	if err != nil {
		return models.Course{}, err
	}

	s.repos.Courses.SaveAll(ctx, courses)
	if course.LecturerID != "" {
		s.repos.Lecturers.SaveAll(ctx, lecturers)
	}
	s.logger.Info().Str("courseId", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// UpdateCourse edits a course. A semester or lecturer change is carried to the
// lecturers' course lists and semesters.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, req dto.CourseRequest) (models.Course, error) {
	if err := checkNotBlank(field{"name", req.Name}, field{"code", req.Code}); err != nil {
		return models.Course{}, err
	}

	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	courses := s.repos.Courses.LoadAll(ctx)
	i := findCourse(courses, id)
	if i < 0 {
		return models.Course{}, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, id)
	}
	if codeTaken(courses, req.Code, id) {
		return models.Course{}, fmt.Errorf("%w: %s", apperrors.ErrDuplicateCourseCode, req.Code)
	}

	updated := courses[i]
	updated.Name = strings.TrimSpace(req.Name)
	updated.Code = strings.TrimSpace(req.Code)
	updated.Description = strings.TrimSpace(req.Description)
	updated.Semester = req.Semester
	updated.LecturerID = req.LecturerID

	return s.save(ctx, courses, updated)
}

// AssignLecturer moves the course to lecturerID, or unassigns it when empty
func (s *courseServiceImpl) AssignLecturer(ctx context.Context, id, lecturerID string) (models.Course, error) {
	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	courses := s.repos.Courses.LoadAll(ctx)
	i := findCourse(courses, id)
	if i < 0 {
		return models.Course{}, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, id)
	}

	updated := courses[i]
	updated.LecturerID = lecturerID
	return s.save(ctx, courses, updated)
}

// save must run under the courses and lecturers locks
func (s *courseServiceImpl) save(ctx context.Context, courses []models.Course, updated models.Course) (models.Course, error) {
	courses, lecturers, err := relations.UpdateCourse(courses, s.repos.Lecturers.LoadAll(ctx), updated)
	if err != nil {
		return models.Course{}, err
	}

	s.repos.Courses.SaveAll(ctx, courses)
	s.repos.Lecturers.SaveAll(ctx, lecturers)
	return updated, nil
}

// DeleteCourse removes a course and its id from every lecturer.
// Students, files and view counts are not touched.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	courses, lecturers, err := relations.RemoveCourse(s.repos.Courses.LoadAll(ctx), s.repos.Lecturers.LoadAll(ctx), id)
	if err != nil {
		return err
	}

	s.repos.Courses.SaveAll(ctx, courses)
	s.repos.Lecturers.SaveAll(ctx, lecturers)
	s.logger.Info().Str("courseId", id).Msg("Course deleted")
	return nil
}

// GetCourseDetails resolves the course's lecturer, roster and study files
func (s *courseServiceImpl) GetCourseDetails(ctx context.Context, id string) (dto.CourseDetailsResponse, error) {
	course, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return dto.CourseDetailsResponse{}, err
	}

	students := s.repos.Students.LoadAll(ctx)
	lecturers := s.repos.Lecturers.LoadAll(ctx)

	details := dto.CourseDetailsResponse{
		Course:   course,
		Students: relations.CourseRoster(course, students),
		Files:    []dto.CourseFileView{},
	}
	if i := findLecturer(lecturers, course.LecturerID); course.LecturerID != "" && i >= 0 {
		details.Lecturer = &lecturers[i]
	}
	for _, f := range relations.CourseFiles(course.ID, s.repos.Files.LoadAll(ctx)) {
		details.Files = append(details.Files, dto.CourseFileView{
			StudyFile:    f,
			UploaderName: uploaderName(f.UploaderID, students, lecturers),
		})
	}
	return details, nil
}

// GenerateRandomCourse adds a course with random details and a random lecturer.
// A colliding code is redrawn a few times before giving up.
func (s *courseServiceImpl) GenerateRandomCourse(ctx context.Context) (models.Course, error) {
	lecturers := s.repos.Lecturers.LoadAll(ctx)

	var err error
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		course := s.generator.Course(lecturers)
		course.ID = idgen.Generate("crs")

		var created models.Course
		created, err = s.insert(ctx, course)
		if err == nil {
			return created, nil
		}
		if !apperrors.Is(err, apperrors.ErrDuplicateCourseCode) {
			return models.Course{}, err
		}
	}
	return models.Course{}, err
}
