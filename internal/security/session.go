package security

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/roamly/roamly/internal/conf"
	"github.com/roamly/roamly/internal/errors"
)

const (
	sessionName    = "roamly-session"
	sessionUserKey = "user_name"
)

// SessionManager wraps a gorilla cookie store with the handful of
// operations the API needs.
type SessionManager struct {
	store *sessions.CookieStore
}

// buildSessionOptions creates session options with standard security settings.
func buildSessionOptions(maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewSessionManager creates a cookie-backed session manager. An empty
// secret gets a random one, which means sessions do not survive a
// process restart.
func NewSessionManager(settings *conf.SessionSettings) *SessionManager {
	secret := settings.Secret
	if secret == "" {
		secret = conf.GenerateRandomSecret()
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = buildSessionOptions(settings.Duration)

	return &SessionManager{store: store}
}

// SignIn records the user name in a new session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userName string) error {
	session, err := sm.store.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes to an error; Get still
		// returns a fresh session we can overwrite.
		session, _ = sm.store.New(r, sessionName)
	}
	session.Values[sessionUserKey] = userName
	if err := session.Save(r, w); err != nil {
		return errors.New(err).
			Component("security").
			Category(errors.CategoryGeneric).
			Context("operation", "save-session").
			Build()
	}
	return nil
}

// SignOut expires the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, err := sm.store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	session.Options.MaxAge = -1
	delete(session.Values, sessionUserKey)
	return session.Save(r, w)
}

// CurrentUser returns the signed-in user name, if any.
func (sm *SessionManager) CurrentUser(r *http.Request) (string, bool) {
	session, err := sm.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	userName, ok := session.Values[sessionUserKey].(string)
	if !ok || userName == "" {
		return "", false
	}
	return userName, true
}
