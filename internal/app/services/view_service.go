package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
)

// ViewService counts course and file views at most once per page visit
type ViewService interface {
	IncrementCourseView(ctx context.Context, courseID, visitID string) (dto.ViewResponse, error)
	IncrementFileView(ctx context.Context, fileID, courseID, visitID string) (dto.ViewResponse, error)
}

// viewServiceImpl implements the ViewService interface.
// Visits live in memory only and expire after the visit TTL.
type viewServiceImpl struct {
	repos  *repositories.Repositories
	locks  *kvstore.KeyLock
	logger zerolog.Logger

	mu     sync.Mutex
	visits *expirable.LRU[string, struct{}]
}

// NewViewService creates a view service remembering up to capacity visits for ttl
func NewViewService(repos *repositories.Repositories, locks *kvstore.KeyLock, capacity int, ttl time.Duration, logger zerolog.Logger) ViewService {
	return &viewServiceImpl{
		repos:  repos,
		locks:  locks,
		logger: logger,
		visits: expirable.NewLRU[string, struct{}](capacity, nil, ttl),
	}
}

// claim marks the visit as counted and reports whether it was new.
// An empty visit id always counts.
func (s *viewServiceImpl) claim(key, visitID string) (string, bool) {
	if visitID == "" {
		return "", true
	}
	guard := key + "|" + visitID

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visits.Contains(guard) {
		return guard, false
	}
	s.visits.Add(guard, struct{}{})
	return guard, true
}

// release forgets a claimed visit whose increment failed
func (s *viewServiceImpl) release(guard string) {
	if guard != "" {
		s.visits.Remove(guard)
	}
}

// IncrementCourseView adds one view to the course unless this visit already did
func (s *viewServiceImpl) IncrementCourseView(ctx context.Context, courseID, visitID string) (dto.ViewResponse, error) {
	guard, fresh := s.claim("course:"+courseID, visitID)

	unlock := s.locks.Lock(repositories.CoursesKey)
	defer unlock()

	courses := s.repos.Courses.LoadAll(ctx)
	i := findCourse(courses, courseID)
	if i < 0 {
		s.release(guard)
		return dto.ViewResponse{}, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, courseID)
	}
	if !fresh {
		return dto.ViewResponse{Counted: false, Views: courses[i].Views.Int()}, nil
	}

	courses[i].Views++
	s.repos.Courses.SaveAll(ctx, courses)
	return dto.ViewResponse{Counted: true, Views: courses[i].Views.Int()}, nil
}

// IncrementFileView adds one view to the standalone file and, independently,
// to the inline copy under the course's files. courseID defaults to the
// standalone file's course.
func (s *viewServiceImpl) IncrementFileView(ctx context.Context, fileID, courseID, visitID string) (dto.ViewResponse, error) {
	guard, fresh := s.claim("file:"+fileID, visitID)

	unlock := s.locks.Lock(repositories.FilesKey, repositories.CoursesKey)
	defer unlock()

	files := s.repos.Files.LoadAll(ctx)
	fi := findFile(files, fileID)
	if courseID == "" && fi >= 0 {
		courseID = files[fi].CourseID
	}

	courses := s.repos.Courses.LoadAll(ctx)
	var inline *models.StudyFile
	if ci := findCourse(courses, courseID); ci >= 0 {
		if j := findFile(courses[ci].Files, fileID); j >= 0 {
			inline = &courses[ci].Files[j]
		}
	}

	if fi < 0 && inline == nil {
		s.release(guard)
		return dto.ViewResponse{}, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, fileID)
	}

	if fresh {
		if fi >= 0 {
			files[fi].Views++
			s.repos.Files.SaveAll(ctx, files)
		}
		if inline != nil {
			inline.Views++
			s.repos.Courses.SaveAll(ctx, courses)
		}
	}

	var views int
	if fi >= 0 {
		views = files[fi].Views.Int()
	} else {
		views = inline.Views.Int()
	}
	return dto.ViewResponse{Counted: fresh, Views: views}, nil
}
