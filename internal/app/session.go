package app

import (
	"net/http"

	"github.com/google/uuid"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
	SessionKeyAdmin  = sessionKey("admin")
	SessionKeyGuest  = sessionKey("guest")
)

func (s sessionKey) String() string {
	return string(s)
}

// sessionGetUserId reads the authenticated user's id from the session.
// Returns uuid.Nil when no user is logged in.
func (app *Application) sessionGetUserId(r *http.Request) uuid.UUID {
	raw := app.sessionManager.GetString(r.Context(), SessionKeyUserId.String())
	if raw == "" {
		return uuid.Nil
	}

	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}

	return userId
}

// contextGetUserId reads the user id stashed by requireAuthentication. Only
// valid on routes behind that middleware.
func (app *Application) contextGetUserId(r *http.Request) uuid.UUID {
	userId, ok := r.Context().Value(SessionKeyUserId).(uuid.UUID)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}
