package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const sessionKey contextKey = "session"

// Session is the per-request identity derived from the bearer token.
type Session struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   string
}

func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}

// CanAccessUser reports whether the session may act on behalf of userID.
func (s Session) CanAccessUser(userID uuid.UUID) bool {
	return s.IsAdmin() || s.UserID == userID
}

func SetSessionContext(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionKey).(Session)
	return session, ok
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	session, ok := GetSessionFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return session.UserID, true
}
