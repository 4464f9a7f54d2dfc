package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const userIDCtxKey ctxKey = iota

// WithUserID stores the authenticated user id. Only AuthCheck should call it
// outside of tests.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(int)
	return userID, ok
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(prefix):])
}
