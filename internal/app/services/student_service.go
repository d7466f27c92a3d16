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
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
	"github.com/rs/zerolog"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	GetAllStudents(ctx context.Context) []models.Student
	GetStudentByID(ctx context.Context, id string) (models.Student, error)
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (models.Student, error)
	UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (models.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	GenerateRandomStudent(ctx context.Context) (models.Student, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	repos     *repositories.Repositories
	locks     *kvstore.KeyLock
	generator *generator.Generator
	logger    zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(repos *repositories.Repositories, locks *kvstore.KeyLock, gen *generator.Generator, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		repos:     repos,
		locks:     locks,
		generator: gen,
		logger:    logger,
	}
}

// GetAllStudents returns every student in stored order
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) []models.Student {
	return s.repos.Students.LoadAll(ctx)
}

// GetStudentByID retrieves a student by national id
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id string) (models.Student, error) {
	students := s.repos.Students.LoadAll(ctx)
	i := findStudent(students, id)
	if i < 0 {
		return models.Student{}, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, id)
	}
	return students[i], nil
}

// CreateStudent adds a student; the national id must be unused
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (models.Student, error) {
	if err := checkNotBlank(field{"fullName", req.FullName}, field{"email", req.Email}); err != nil {
		return models.Student{}, err
	}

	unlock := s.locks.Lock(repositories.StudentsKey, repositories.CoursesKey)
	defer unlock()

	students := s.repos.Students.LoadAll(ctx)
	courses := s.repos.Courses.LoadAll(ctx)

	student := models.Student{
		ID:        strings.TrimSpace(req.ID),
		FullName:  strings.TrimSpace(req.FullName),
		Email:     strings.TrimSpace(req.Email),
		Semester:  req.Semester,
		CourseIDs: relations.KnownCourseIDs(req.CourseIDs, courses),
	}
	if findStudent(students, student.ID) >= 0 {
		return models.Student{}, fmt.Errorf("%w: %s", apperrors.ErrDuplicateStudentID, student.ID)
	}

	s.repos.Students.SaveAll(ctx, append(students, student))
	s.logger.Info().Str("studentId", student.ID).Msg("Student created")
	return student, nil
}

// UpdateStudent replaces the editable fields of a student; the id never changes
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (models.Student, error) {
	if err := checkNotBlank(field{"fullName", req.FullName}, field{"email", req.Email}); err != nil {
		return models.Student{}, err
	}

	unlock := s.locks.Lock(repositories.StudentsKey, repositories.CoursesKey)
	defer unlock()

	students := s.repos.Students.LoadAll(ctx)
	i := findStudent(students, id)
	if i < 0 {
		return models.Student{}, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, id)
	}
	courses := s.repos.Courses.LoadAll(ctx)

	students[i].FullName = strings.TrimSpace(req.FullName)
	students[i].Email = strings.TrimSpace(req.Email)
	students[i].Semester = req.Semester
	students[i].CourseIDs = relations.KnownCourseIDs(req.CourseIDs, courses)

	s.repos.Students.SaveAll(ctx, students)
	return students[i], nil
}

// DeleteStudent removes a student. Legacy course rosters are left alone.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	unlock := s.locks.Lock(repositories.StudentsKey)
	defer unlock()

	students := s.repos.Students.LoadAll(ctx)
	i := findStudent(students, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, id)
	}

	s.repos.Students.SaveAll(ctx, append(students[:i], students[i+1:]...))
	s.logger.Info().Str("studentId", id).Msg("Student deleted")
	return nil
}

// GenerateRandomStudent adds a student with random details enrolled in some existing courses
func (s *studentServiceImpl) GenerateRandomStudent(ctx context.Context) (models.Student, error) {
	unlock := s.locks.Lock(repositories.StudentsKey, repositories.CoursesKey)
	defer unlock()

	students := s.repos.Students.LoadAll(ctx)
	courses := s.repos.Courses.LoadAll(ctx)

	student := s.generator.Student(courses, func(id string) bool {
		return findStudent(students, id) >= 0
	})
	if findStudent(students, student.ID) >= 0 {
		return models.Student{}, fmt.Errorf("%w: %s", apperrors.ErrDuplicateStudentID, student.ID)
	}

	s.repos.Students.SaveAll(ctx, append(students, student))
	return student, nil
}
