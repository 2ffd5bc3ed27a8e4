package requestid

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestAccept(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"empty", "", false},
		{"uuid", "7f1c9a52-3c1e-4d8e-9a51-2f0b6c1d7e44", true},
		{"trace style", "req_01.abc-XYZ", true},
		{"spaces", "abc def", false},
		{"newline", "abc\nlevel=ERROR", false},
		{"too long", strings.Repeat("a", maxLen+1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Accept(tc.incoming)
			if tc.keep {
				if got != tc.incoming {
					t.Errorf("Accept(%q) = %q, want it kept", tc.incoming, got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("Accept(%q) = %q, want a fresh uuid", tc.incoming, got)
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	if got := FromContext(context.Background()); got != "" {
		t.Errorf("empty context = %q", got)
	}
	if got := FromContext(WithRequestID(context.Background(), "abc")); got != "abc" {
		t.Errorf("FromContext = %q", got)
	}
}
