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

// LecturerService defines the interface for lecturer-related operations
type LecturerService interface {
	GetAllLecturers(ctx context.Context) []models.Lecturer
	GetLecturerByID(ctx context.Context, id string) (models.Lecturer, error)
	CreateLecturer(ctx context.Context, req dto.CreateLecturerRequest) (models.Lecturer, error)
	UpdateLecturer(ctx context.Context, id string, req dto.UpdateLecturerRequest) (models.Lecturer, error)
	DeleteLecturer(ctx context.Context, id string) error
	SetLecturerCourses(ctx context.Context, id string, courseIDs []string) (models.Lecturer, error)
	SetLecturerSemesters(ctx context.Context, id string, semesters []int) (models.Lecturer, error)
	GetLecturerDetails(ctx context.Context, id string) (dto.LecturerDetailsResponse, error)
	GenerateRandomLecturer(ctx context.Context) (models.Lecturer, error)
}

// lecturerServiceImpl implements the LecturerService interface
type lecturerServiceImpl struct {
	repos     *repositories.Repositories
	locks     *kvstore.KeyLock
	generator *generator.Generator
	logger    zerolog.Logger
}

// NewLecturerService creates a new lecturer service instance
func NewLecturerService(repos *repositories.Repositories, locks *kvstore.KeyLock, gen *generator.Generator, logger zerolog.Logger) LecturerService {
	return &lecturerServiceImpl{
		repos:     repos,
		locks:     locks,
		generator: gen,
		logger:    logger,
	}
}

// GetAllLecturers returns the permanent lecturers followed by the added ones
func (s *lecturerServiceImpl) GetAllLecturers(ctx context.Context) []models.Lecturer {
	return s.repos.Lecturers.LoadAll(ctx)
}

// GetLecturerByID retrieves a lecturer by id
func (s *lecturerServiceImpl) GetLecturerByID(ctx context.Context, id string) (models.Lecturer, error) {
	lecturers := s.repos.Lecturers.LoadAll(ctx)
	i := findLecturer(lecturers, id)
	if i < 0 {
		return models.Lecturer{}, fmt.Errorf("%w: %s", apperrors.ErrLecturerNotFound, id)
	}
	return lecturers[i], nil
}

// CreateLecturer adds a lecturer owning the listed courses. Without a
// requested id a fresh 9-digit one is drawn.
func (s *lecturerServiceImpl) CreateLecturer(ctx context.Context, req dto.CreateLecturerRequest) (models.Lecturer, error) {
	if err := checkNotBlank(field{"name", req.Name}, field{"email", req.Email}); err != nil {
		return models.Lecturer{}, err
	}

	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	lecturers := s.repos.Lecturers.LoadAll(ctx)

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = idgen.NationalID()
		for attempt := 1; attempt < maxGenerateAttempts && findLecturer(lecturers, id) >= 0; attempt++ {
			id = idgen.NationalID()
		}
	}

	lecturer := models.Lecturer{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Specialization: strings.TrimSpace(req.Specialization),
		Courses:        req.Courses,
		Semesters:      req.Semesters,
	}
	return s.insert(ctx, lecturers, lecturer)
}

// insert must run under the courses and lecturers locks
func (s *lecturerServiceImpl) insert(ctx context.Context, lecturers []models.Lecturer, lecturer models.Lecturer) (models.Lecturer, error) {
	if findLecturer(lecturers, lecturer.ID) >= 0 {
		return models.Lecturer{}, fmt.Errorf("%w: %s", apperrors.ErrDuplicateLecturerID, lecturer.ID)
	}

	lecturers, courses, err := relations.AddLecturer(lecturers, s.repos.Courses.LoadAll(ctx), lecturer)
	if err != nil {
		return models.Lecturer{}, err
	}

	s.repos.Lecturers.SaveAll(ctx, lecturers)
	s.repos.Courses.SaveAll(ctx, courses)
	s.logger.Info().Str("lecturerId", lecturer.ID).Msg("Lecturer created")
	return lecturers[findLecturer(lecturers, lecturer.ID)], nil
}

// UpdateLecturer edits name, email and specialization. Permanent lecturers may be edited.
func (s *lecturerServiceImpl) UpdateLecturer(ctx context.Context, id string, req dto.UpdateLecturerRequest) (models.Lecturer, error) {
	if err := checkNotBlank(field{"name", req.Name}, field{"email", req.Email}); err != nil {
		return models.Lecturer{}, err
	}

	unlock := s.locks.Lock(repositories.LecturersKey)
	defer unlock()

	lecturers := s.repos.Lecturers.LoadAll(ctx)
	i := findLecturer(lecturers, id)
	if i < 0 {
		return models.Lecturer{}, fmt.Errorf("%w: %s", apperrors.ErrLecturerNotFound, id)
	}

	lecturers[i].Name = strings.TrimSpace(req.Name)
	lecturers[i].Email = strings.TrimSpace(req.Email)
	lecturers[i].Specialization = strings.TrimSpace(req.Specialization)

	s.repos.Lecturers.SaveAll(ctx, lecturers)
	return lecturers[i], nil
}

// DeleteLecturer removes a non-permanent lecturer and unassigns its courses
func (s *lecturerServiceImpl) DeleteLecturer(ctx context.Context, id string) error {
	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	lecturers, courses, err := relations.RemoveLecturer(s.repos.Lecturers.LoadAll(ctx), s.repos.Courses.LoadAll(ctx), id)
	if err != nil {
		return err
	}

	s.repos.Lecturers.SaveAll(ctx, lecturers)
	s.repos.Courses.SaveAll(ctx, courses)
	s.logger.Info().Str("lecturerId", id).Msg("Lecturer deleted")
	return nil
}

// SetLecturerCourses makes courseIDs the lecturer's exact course set
func (s *lecturerServiceImpl) SetLecturerCourses(ctx context.Context, id string, courseIDs []string) (models.Lecturer, error) {
	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	lecturers, courses, err := relations.SetLecturerCourses(s.repos.Lecturers.LoadAll(ctx), s.repos.Courses.LoadAll(ctx), id, courseIDs)
	if err != nil {
		return models.Lecturer{}, err
	}

	s.repos.Lecturers.SaveAll(ctx, lecturers)
	s.repos.Courses.SaveAll(ctx, courses)
	return lecturers[findLecturer(lecturers, id)], nil
}

// SetLecturerSemesters stores the submitted semesters that the lecturer's courses allow
func (s *lecturerServiceImpl) SetLecturerSemesters(ctx context.Context, id string, semesters []int) (models.Lecturer, error) {
	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	lecturers, err := relations.SetLecturerSemesters(s.repos.Lecturers.LoadAll(ctx), s.repos.Courses.LoadAll(ctx), id, semesters)
	if err != nil {
		return models.Lecturer{}, err
	}

	s.repos.Lecturers.SaveAll(ctx, lecturers)
	return lecturers[findLecturer(lecturers, id)], nil
}

// GetLecturerDetails resolves the lecturer's courses
func (s *lecturerServiceImpl) GetLecturerDetails(ctx context.Context, id string) (dto.LecturerDetailsResponse, error) {
	lecturer, err := s.GetLecturerByID(ctx, id)
	if err != nil {
		return dto.LecturerDetailsResponse{}, err
	}
	return dto.LecturerDetailsResponse{
		Lecturer: lecturer,
		Courses:  relations.LecturerCourses(lecturer, s.repos.Courses.LoadAll(ctx)),
	}, nil
}

// GenerateRandomLecturer adds a lecturer with random details teaching one or two existing courses
func (s *lecturerServiceImpl) GenerateRandomLecturer(ctx context.Context) (models.Lecturer, error) {
	unlock := s.locks.Lock(repositories.CoursesKey, repositories.LecturersKey)
	defer unlock()

	lecturers := s.repos.Lecturers.LoadAll(ctx)
	courses := s.repos.Courses.LoadAll(ctx)

	lecturer := s.generator.Lecturer(courses)
	for attempt := 1; attempt < maxGenerateAttempts && findLecturer(lecturers, lecturer.ID) >= 0; attempt++ {
		lecturer.ID = idgen.NationalID()
	}
	return s.insert(ctx, lecturers, lecturer)
}
