package dbmigrate

import (
	"context"
	"errors"
	"testing"

	"github.com/fdg312/food-tracker/internal/config"
)

func TestSelectTarget(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.Config
		requireDirect bool
		wantURL       string
		wantSource    string
		wantWarning   bool
		wantErr       error
	}{
		{
			name:       "direct wins",
			cfg:        config.Config{DatabaseURLDirect: "postgres://direct", DatabaseURLRaw: "postgres://url", DatabaseURLPooled: "postgres://pooled"},
			wantURL:    "postgres://direct",
			wantSource: "DATABASE_URL_DIRECT",
		},
		{
			name:       "falls back to DATABASE_URL",
			cfg:        config.Config{DatabaseURLRaw: "postgres://url", DatabaseURLPooled: "postgres://pooled"},
			wantURL:    "postgres://url",
			wantSource: "DATABASE_URL",
		},
		{
			name:        "pooled with warning",
			cfg:         config.Config{DatabaseURLPooled: "postgres://pooled"},
			wantURL:     "postgres://pooled",
			wantSource:  "DATABASE_URL_POOLED",
			wantWarning: true,
		},
		{
			name:          "direct required but missing",
			cfg:           config.Config{DatabaseURLRaw: "postgres://url"},
			requireDirect: true,
			wantErr:       ErrDirectURLRequired,
		},
		{
			name:          "direct required and present",
			cfg:           config.Config{DatabaseURLDirect: "postgres://direct"},
			requireDirect: true,
			wantURL:       "postgres://direct",
			wantSource:    "DATABASE_URL_DIRECT",
		},
		{
			name:    "nothing configured",
			wantErr: ErrNoDatabaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			got, err := SelectTarget(&cfg, tt.requireDirect)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.URL != tt.wantURL || got.Source != tt.wantSource {
				t.Errorf("got %+v", got)
			}
			if (got.Warning != "") != tt.wantWarning {
				t.Errorf("unexpected warning %q", got.Warning)
			}
		})
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	if err := Run(context.Background(), "redo", "postgres://x", ""); err == nil {
		t.Error("expected error for unsupported command")
	}
	if err := Run(context.Background(), "up", "", ""); !errors.Is(err, ErrNoDatabaseURL) {
		t.Errorf("expected ErrNoDatabaseURL, got %v", err)
	}
}
