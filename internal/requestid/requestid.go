// Package requestid carries the per-request correlation id through contexts.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

const maxLen = 64

type ctxKey struct{}

// Accept returns the caller-supplied id when it is short and made only of
// [A-Za-z0-9._-], and a fresh UUID v4 otherwise. Ids end up in logs, so
// arbitrary header content is not trusted.
func Accept(incoming string) string {
	if incoming == "" || len(incoming) > maxLen {
		return uuid.NewString()
	}
	for _, r := range incoming {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return uuid.NewString()
		}
	}
	return incoming
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns "" when ctx has no request id.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
