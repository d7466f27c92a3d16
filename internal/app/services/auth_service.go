package services

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/session"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/idgen"
	"github.com/rs/zerolog"
)

// AuthService handles the current-user record. There is no credential
// store: any well-formed login becomes the current user.
type AuthService struct {
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(sessions *session.Manager, logger zerolog.Logger) *AuthService {
	return &AuthService{
		sessions: sessions,
		logger:   logger,
	}
}

// Login records a new current user, remembered across browser sessions when requested
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request, req dto.LoginRequest) (models.CurrentUser, error) {
	user := models.CurrentUser{
		ID:       idgen.Generate("user"),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		LoggedAt: time.Now().UTC(),
	}

	if err := s.sessions.Save(w, r, user, req.Remember); err != nil {
		return models.CurrentUser{}, fmt.Errorf("failed to save current user: %w", err)
	}

	s.logger.Info().Str("userId", user.ID).Bool("remember", req.Remember).Msg("User logged in")
	return user, nil
}

// Logout clears the current user
func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request) error {
	if err := s.sessions.Clear(w, r); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in user or ErrNotLoggedIn
func (s *AuthService) CurrentUser(r *http.Request) (models.CurrentUser, error) {
	user, ok := s.sessions.Current(r)
	if !ok {
		return models.CurrentUser{}, apperrors.ErrNotLoggedIn
	}
	return user, nil
}
