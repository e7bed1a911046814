package pkg

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const SessionCookieName = "user_session"

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// SessionID returns the session id carried by the request, if any.
func SessionID(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	if _, err = uuid.Parse(cookie.Value); err != nil {
		return "", false
	}

	return cookie.Value, true
}

// NewSessionCookie builds the cookie that binds a browser to its game for ttl.
func NewSessionCookie(sessionID string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
