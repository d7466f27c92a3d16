package services

import (
	"context"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/popularity"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
)

// DefaultTop is the ranking size when none is requested
const DefaultTop = 10

// PopularityService ranks courses and study files by views
type PopularityService interface {
	GetPopular(ctx context.Context, top int) dto.PopularResponse
}

type popularityServiceImpl struct {
	repos *repositories.Repositories
}

// NewPopularityService creates a new popularity service instance
func NewPopularityService(repos *repositories.Repositories) PopularityService {
	return &popularityServiceImpl{repos: repos}
}

// GetPopular returns the top courses and files; top <= 0 means DefaultTop
func (s *popularityServiceImpl) GetPopular(ctx context.Context, top int) dto.PopularResponse {
	if top <= 0 {
		top = DefaultTop
	}

	courses := s.repos.Courses.LoadAll(ctx)
	lecturers := s.repos.Lecturers.LoadAll(ctx)

	resp := dto.PopularResponse{
		TopCourses: []dto.CourseSummary{},
		TopFiles:   popularity.TopFiles(courses, s.repos.Files.LoadAll(ctx), top),
	}
	for _, c := range popularity.TopCourses(courses, top) {
		summary := dto.CourseSummary{ID: c.ID, Name: c.Name, Code: c.Code, Views: c.Views.Int()}
		if i := findLecturer(lecturers, c.LecturerID); c.LecturerID != "" && i >= 0 {
			summary.LecturerName = lecturers[i].Name
		}
		resp.TopCourses = append(resp.TopCourses, summary)
	}
	return resp
}
