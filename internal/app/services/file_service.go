package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/generator"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/idgen"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
	"github.com/rs/zerolog"
)

// FileService defines the interface for study file operations.
// currentUserID is the logged-in user's id, or empty.
type FileService interface {
	GetAllFiles(ctx context.Context) []models.StudyFile
	GetFileByID(ctx context.Context, id string) (models.StudyFile, error)
	CreateFile(ctx context.Context, req dto.FileRequest, currentUserID string) (models.StudyFile, error)
	UpdateFile(ctx context.Context, id string, req dto.FileRequest) (models.StudyFile, error)
	UpdateFileStatus(ctx context.Context, id string, status models.FileStatus) (models.StudyFile, error)
	DeleteFile(ctx context.Context, id string) error
	GenerateRandomFile(ctx context.Context, currentUserID string) (models.StudyFile, error)
}

// fileServiceImpl implements the FileService interface
type fileServiceImpl struct {
	repos     *repositories.Repositories
	locks     *kvstore.KeyLock
	generator *generator.Generator
	logger    zerolog.Logger
}

// NewFileService creates a new file service instance
func NewFileService(repos *repositories.Repositories, locks *kvstore.KeyLock, gen *generator.Generator, logger zerolog.Logger) FileService {
	return &fileServiceImpl{
		repos:     repos,
		locks:     locks,
		generator: gen,
		logger:    logger,
	}
}

// GetAllFiles returns the files collection in stored order
func (s *fileServiceImpl) GetAllFiles(ctx context.Context) []models.StudyFile {
	return s.repos.Files.LoadAll(ctx)
}

// GetFileByID retrieves a study file by id
func (s *fileServiceImpl) GetFileByID(ctx context.Context, id string) (models.StudyFile, error) {
	files := s.repos.Files.LoadAll(ctx)
	i := findFile(files, id)
	if i < 0 {
		return models.StudyFile{}, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, id)
	}
	return files[i], nil
}

// checkCourse requires courseID to name an existing course
func (s *fileServiceImpl) checkCourse(ctx context.Context, courseID string) error {
	if strings.TrimSpace(courseID) == "" {
		return apperrors.ErrCourseRequired
	}
	if findCourse(s.repos.Courses.LoadAll(ctx), courseID) < 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, courseID)
	}
	return nil
}

// CreateFile adds a study file to the files collection. The uploader is the
// requested one, else the current user, else a generated placeholder.
func (s *fileServiceImpl) CreateFile(ctx context.Context, req dto.FileRequest, currentUserID string) (models.StudyFile, error) {
	if err := checkNotBlank(field{"name", req.Name}, field{"fileUrl", req.FileURL}); err != nil {
		return models.StudyFile{}, err
	}

	status := models.FileStatus(req.Status)
	if status == "" {
		status = models.FileStatusPending
	}

	file := models.StudyFile{
		ID:          idgen.Generate("file"),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Type:        models.FileType(req.Type),
		FileURL:     strings.TrimSpace(req.FileURL),
		CourseID:    req.CourseID,
		Status:      status,
		UploaderID:  resolveUploader(req.UploaderID, currentUserID),
	}
	return s.insert(ctx, file)
}

func (s *fileServiceImpl) insert(ctx context.Context, file models.StudyFile) (models.StudyFile, error) {
	unlock := s.locks.Lock(repositories.FilesKey, repositories.CoursesKey)
	defer unlock()

	if err := s.checkCourse(ctx, file.CourseID); err != nil {
		return models.StudyFile{}, err
	}

	s.repos.Files.SaveAll(ctx, append(s.repos.Files.LoadAll(ctx), file))
	s.logger.Info().Str("fileId", file.ID).Str("courseId", file.CourseID).Msg("Study file created")
	return file, nil
}

// UpdateFile edits a study file. Views and id are kept; an empty uploader keeps the stored one.
func (s *fileServiceImpl) UpdateFile(ctx context.Context, id string, req dto.FileRequest) (models.StudyFile, error) {
	if err := checkNotBlank(field{"name", req.Name}, field{"fileUrl", req.FileURL}); err != nil {
		return models.StudyFile{}, err
	}

	unlock := s.locks.Lock(repositories.FilesKey, repositories.CoursesKey)
	defer unlock()

	files := s.repos.Files.LoadAll(ctx)
	i := findFile(files, id)
	if i < 0 {
		return models.StudyFile{}, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, id)
	}
	if err := s.checkCourse(ctx, req.CourseID); err != nil {
		return models.StudyFile{}, err
	}

	f := &files[i]
	f.Name = strings.TrimSpace(req.Name)
	f.Description = strings.TrimSpace(req.Description)
	f.Type = models.FileType(req.Type)
	f.FileURL = strings.TrimSpace(req.FileURL)
	f.CourseID = req.CourseID
	if req.Status != "" {
		f.Status = models.FileStatus(req.Status)
	}
	if req.UploaderID != "" {
		f.UploaderID = req.UploaderID
	}

	s.repos.Files.SaveAll(ctx, files)
	return *f, nil
}

// UpdateFileStatus sets any status; transitions are unrestricted
func (s *fileServiceImpl) UpdateFileStatus(ctx context.Context, id string, status models.FileStatus) (models.StudyFile, error) {
	unlock := s.locks.Lock(repositories.FilesKey)
	defer unlock()

	files := s.repos.Files.LoadAll(ctx)
	i := findFile(files, id)
	if i < 0 {
		return models.StudyFile{}, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, id)
	}

	files[i].Status = status
	s.repos.Files.SaveAll(ctx, files)
	return files[i], nil
}

// DeleteFile removes a file from the files collection; inline course copies stay
func (s *fileServiceImpl) DeleteFile(ctx context.Context, id string) error {
	unlock := s.locks.Lock(repositories.FilesKey)
	defer unlock()

	files := s.repos.Files.LoadAll(ctx)
	i := findFile(files, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, id)
	}

	s.repos.Files.SaveAll(ctx, append(files[:i], files[i+1:]...))
	s.logger.Info().Str("fileId", id).Msg("Study file deleted")
	return nil
}

// GenerateRandomFile adds a random study file to a random existing course
func (s *fileServiceImpl) GenerateRandomFile(ctx context.Context, currentUserID string) (models.StudyFile, error) {
	file := s.generator.File(s.repos.Courses.LoadAll(ctx))
	file.ID = idgen.Generate("file")
	file.UploaderID = resolveUploader("", currentUserID)
	return s.insert(ctx, file)
}

func resolveUploader(requested, currentUserID string) string {
	switch {
	case strings.TrimSpace(requested) != "":
		return strings.TrimSpace(requested)
	case currentUserID != "":
		return currentUserID
	default:
		return idgen.Generate("uploader")
	}
}
