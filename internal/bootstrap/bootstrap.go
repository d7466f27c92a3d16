package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/Taha-Code-Hup/OnoTime/internal/app/controllers"
	appMigrations "github.com/Taha-Code-Hup/OnoTime/internal/app/migrations"
	appRepos "github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
	appRoutes "github.com/Taha-Code-Hup/OnoTime/internal/app/routes"
	appServices "github.com/Taha-Code-Hup/OnoTime/internal/app/services"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/session"
	"github.com/Taha-Code-Hup/OnoTime/internal/config"
	"github.com/Taha-Code-Hup/OnoTime/internal/db"
	appMiddleware "github.com/Taha-Code-Hup/OnoTime/internal/middleware"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/filestorage"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/logger"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/mirror"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/validation"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/websocket"
	"github.com/Taha-Code-Hup/OnoTime/internal/seed"
)

// Storage is the opened persistence layer and the resources that must be released with it
type Storage struct {
	Backend  kvstore.Backend
	Database *db.PostgresDB            // Set for the postgres driver
	Mirror   *mirror.Backend           // Set when the mirror is enabled
	Remote   *mirror.GormDocumentStore // Set when the mirror is enabled
}

// Close flushes pending mirror writes and releases connections
func (s *Storage) Close(lgr zerolog.Logger) {
	if s.Mirror != nil {
		lgr.Info().Msg("Flushing pending mirror writes...")
		s.Mirror.Flush()
	}
	if s.Remote != nil {
		if err := s.Remote.Close(); err != nil {
			lgr.Error().Err(err).Msg("Failed to close mirror connection")
		}
	}
	if s.Database != nil {
		s.Database.Close()
		lgr.Info().Msg("Database connection pool closed.")
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Storage     *Storage
	Store       *kvstore.Store
	Repos       *appRepos.Repositories
	Sessions    *session.Manager
	Services    *appServices.Services
	Hub         *websocket.Hub
	Controllers appRoutes.Controllers
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured backend and, when enabled, wraps it with the remote mirror.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	storage := &Storage{}

	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		ls, err := filestorage.NewLocalStorage(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		storage.Backend = ls
		lgr.Info().Str("dir", cfg.Storage.Dir).Msg("Using file storage")

	case config.StorageDriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg.Database)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database, lgr).Migrate(ctx); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		storage.Database = database
		storage.Backend = kvstore.NewPostgresBackend(database.Pool)

	default:
		storage.Backend = kvstore.NewMemoryBackend(cfg.Storage.QuotaBytes)
		lgr.Info().Int("quotaBytes", cfg.Storage.QuotaBytes).Msg("Using in-memory storage")
	}

	if cfg.Mirror.Enabled {
		remote, err := mirror.OpenGormDocumentStore(cfg.Mirror.DSN)
		if err != nil {
			storage.Close(lgr)
			return nil, fmt.Errorf("failed to open mirror: %w", err)
		}
		storage.Remote = remote
		storage.Mirror = mirror.NewBackend(storage.Backend, remote, cfg.Mirror.Timeout, lgr)
		storage.Backend = storage.Mirror
		lgr.Info().Dur("timeout", cfg.Mirror.Timeout).Msg("Remote mirror enabled")
	}

	return storage, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, storage *Storage, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Storage: storage, Logger: lgr}

	deps.Store = kvstore.NewStore(storage.Backend, lgr)
	deps.Hub = websocket.NewHub(lgr)
	deps.Store.OnChange(deps.Hub.CollectionChanged)

	deps.Repos = appRepos.NewRepositories(deps.Store)
	seed.CreateDefaultData(ctx, deps.Repos, lgr)

	deps.Sessions = session.NewManager([]byte(cfg.Server.SessionSecret), cfg.IsProduction(), lgr)
	deps.Services = appServices.NewServices(deps.Repos, deps.Sessions, cfg, lgr)

	svc := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(svc.Auth, lgr),
		Students:   appControllers.NewStudentController(svc.Students),
		Courses:    appControllers.NewCourseController(svc.Courses, svc.Views),
		Lecturers:  appControllers.NewLecturerController(svc.Lecturers),
		Files:      appControllers.NewFileController(svc.Files, svc.Views, svc.Auth),
		Popularity: appControllers.NewPopularityController(svc.Popularity),
		WebSocket:  websocket.NewHandler(deps.Hub, lgr),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", appMiddleware.RequestIDHeader},
		ExposeHeaders:    []string{appMiddleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupRouter(router, deps.Controllers)

	return router, nil
}
