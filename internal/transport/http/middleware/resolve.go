package middleware

import (
	"errors"

	"github.com/ErlanBelekov/uptask/internal/access"
	"github.com/ErlanBelekov/uptask/internal/metrics"
	"github.com/gin-gonic/gin"
)

const scopeKey = "scope"

// Resolve runs pipeline for the authenticated caller and stores the resulting
// scope. A rejection is handed to onReject, which must abort the request.
func Resolve(pipeline access.Pipeline, onReject func(*gin.Context, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, err := pipeline.Run(c.Request.Context(), c, IdentityFrom(c))
		if err != nil {
			var rej *access.Rejection
			if errors.As(err, &rej) {
				metrics.AccessRejectionsTotal.WithLabelValues(rej.Stage).Inc()
			}
			onReject(c, err)
			return
		}

		SetScope(c, scope)
		c.Next()
	}
}

// SetScope attaches scope to the request.
func SetScope(c *gin.Context, scope access.Scope) {
	c.Set(scopeKey, scope)
}

// ScopeFrom returns the scope stored by Resolve.
func ScopeFrom(c *gin.Context) access.Scope {
	scope, _ := c.Get(scopeKey)
	v, _ := scope.(access.Scope)
	return v
}
