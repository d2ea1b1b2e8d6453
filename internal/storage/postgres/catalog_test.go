package postgres

import (
	"reflect"
	"testing"

	"github.com/fdg312/food-tracker/internal/storage"
)

func TestNameTokensMatchTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"rice-cake", []string{"rice", "cake"}},
		{"foo@bar.com snack", []string{"foo", "bar", "com", "snack"}},
		{"brown rice", []string{"brown", "rice"}},
	}

	for _, tt := range tests {
		got := nameTokens(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("nameTokens(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !reflect.DeepEqual(got, storage.Tokenize(tt.in)) {
			t.Errorf("nameTokens(%q) diverges from storage.Tokenize", tt.in)
		}
	}
}

func TestNameTokensEmptyIsNotNil(t *testing.T) {
	got := nameTokens(" -- ")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
