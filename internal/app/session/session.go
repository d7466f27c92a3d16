// Package session keeps the signed-in user record in signed cookies.
package session

import (
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/goccy/go-json"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	// CurrentUserKey names the remembered cookie; the browser-session one adds a suffix
	CurrentUserKey = "app_current_user_v1"

	sessionName    = CurrentUserKey + "_session"
	rememberName   = CurrentUserKey
	userValue      = "user"
	rememberMaxAge = 30 * 24 * 60 * 60
)

// Manager reads and writes the current user record
type Manager struct {
	store  *sessions.CookieStore
	secure bool
	logger zerolog.Logger
}

// NewManager creates a manager signing cookies with secret
func NewManager(secret []byte, secure bool, logger zerolog.Logger) *Manager {
	store := sessions.NewCookieStore(secret)
	store.MaxAge(rememberMaxAge)
	return &Manager{store: store, secure: secure, logger: logger}
}

func (m *Manager) options(maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Save stores user in a persistent cookie when remember is set and in a
// browser-session cookie otherwise. The other cookie is cleared.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, user models.CurrentUser, remember bool) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	keep, drop := sessionName, rememberName
	maxAge := 0
	if remember {
		keep, drop = rememberName, sessionName
		maxAge = rememberMaxAge
	}

	s, _ := m.store.Get(r, keep)
	s.Values[userValue] = string(raw)
	s.Options = m.options(maxAge)
	if err := s.Save(r, w); err != nil {
		return err
	}

	return m.expire(w, r, drop)
}

// Current returns the signed-in user, preferring the browser-session cookie.
// Missing, tampered or unparsable cookies count as signed out.
func (m *Manager) Current(r *http.Request) (models.CurrentUser, bool) {
	for _, name := range []string{sessionName, rememberName} {
		s, err := m.store.Get(r, name)
		if err != nil {
			m.logger.Debug().Err(err).Str("cookie", name).Msg("Ignoring unreadable session cookie")
			continue
		}
		raw, ok := s.Values[userValue].(string)
		if !ok {
			continue
		}
		var user models.CurrentUser
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			m.logger.Warn().Err(err).Str("cookie", name).Msg("Stored current user is not valid")
			continue
		}
		return user, true
	}
	return models.CurrentUser{}, false
}

// Clear removes the user from both cookies
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	if err := m.expire(w, r, sessionName); err != nil {
		return err
	}
	return m.expire(w, r, rememberName)
}

func (m *Manager) expire(w http.ResponseWriter, r *http.Request, name string) error {
	s, _ := m.store.Get(r, name)
	s.Values = map[interface{}]interface{}{}
	s.Options = m.options(-1)
	return s.Save(r, w)
}
