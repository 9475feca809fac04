package core

import "context"

type contextKey string

const userIDContextKey contextKey = "userID"

// ContextWithUserID tags a context with the virtual user's ID so deep
// layers (debug logging) can attribute their output.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the tagged user ID, or 0 if absent.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDContextKey).(int); ok {
		return id
	}
	return 0
}
