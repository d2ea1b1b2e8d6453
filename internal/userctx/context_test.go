package userctx

import (
	"context"
	"testing"
)

func TestOwnerID(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"anonymous", context.Background(), DefaultUserID},
		{"blank id", WithUserID(context.Background(), "  "), DefaultUserID},
		{"authenticated", WithUserID(context.Background(), "user-1"), "user-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OwnerID(tt.ctx); got != tt.want {
				t.Errorf("OwnerID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	if _, ok := GetUserID(context.Background()); ok {
		t.Error("expected no user id in a bare context")
	}
}
