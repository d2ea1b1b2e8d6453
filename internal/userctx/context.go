// Package userctx carries the authenticated owner id through request contexts.
package userctx

import (
	"context"
	"strings"
)

// DefaultUserID owns data written by anonymous requests when auth is optional.
const DefaultUserID = "default"

type ctxKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// GetUserID returns the id set by WithUserID, if any.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok
}

// OwnerID is the owner_user_id every storage call is scoped to.
func OwnerID(ctx context.Context) string {
	if userID, ok := GetUserID(ctx); ok && strings.TrimSpace(userID) != "" {
		return userID
	}
	return DefaultUserID
}
