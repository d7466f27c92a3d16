package services

import (
	"github.com/Taha-Code-Hup/OnoTime/internal/app/generator"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/session"
	"github.com/Taha-Code-Hup/OnoTime/internal/config"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
	"github.com/rs/zerolog"
)

// Services defined in this package:
// - StudentService: student records and enrollment
// - CourseService: course catalogue, lecturer assignment and course details
// - LecturerService: lecturers, their courses and semesters
// - FileService: study files
// - ViewService: once-per-visit view counting
// - PopularityService: top courses and files
// - AuthService: current-user login and logout

// Services holds every business service, sharing one lock queue
type Services struct {
	Students   StudentService
	Courses    CourseService
	Lecturers  LecturerService
	Files      FileService
	Views      ViewService
	Popularity PopularityService
	Auth       *AuthService
}

// NewServices wires the services over repos. Every read-modify-write of a
// collection runs under locks for the keys it touches.
func NewServices(repos *repositories.Repositories, sessions *session.Manager, cfg *config.Config, logger zerolog.Logger) *Services {
	locks := kvstore.NewKeyLock()
	gen := generator.NewGenerator()

	return &Services{
		Students:   NewStudentService(repos, locks, gen, logger),
		Courses:    NewCourseService(repos, locks, gen, logger),
		Lecturers:  NewLecturerService(repos, locks, gen, logger),
		Files:      NewFileService(repos, locks, gen, logger),
		Views:      NewViewService(repos, locks, cfg.Views.VisitCapacity, cfg.Views.VisitTTL, logger),
		Popularity: NewPopularityService(repos),
		Auth:       NewAuthService(sessions, logger),
	}
}
