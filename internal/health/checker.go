// Package health serves the liveness and readiness probes on the ops port.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool and mongodb.Pinger.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is one thing readiness waits on.
type Dependency struct {
	Name   string
	Pinger Pinger
}

type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

type Checker struct {
	deps   []Dependency
	logger *slog.Logger
	up     *prometheus.GaugeVec
}

// NewChecker registers the uptask_health_check_up gauge on reg.
func NewChecker(logger *slog.Logger, reg prometheus.Registerer, deps ...Dependency) *Checker {
	up := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "uptask",
		Name:      "health_check_up",
		Help:      "Whether a dependency answered its last readiness ping. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(up)

	return &Checker{deps: deps, logger: logger.With("component", "health"), up: up}
}

// Liveness only says the process is serving.
func (c *Checker) Liveness(context.Context) HealthResult {
	return HealthResult{Status: "up"}
}

// Readiness is down when any dependency fails its ping.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	result := HealthResult{Status: "up", Checks: make(map[string]CheckResult, len(c.deps))}
	for _, dep := range c.deps {
		check := c.ping(ctx, dep)
		if check.Status != "up" {
			result.Status = "down"
		}
		result.Checks[dep.Name] = check
	}
	return result
}

func (c *Checker) ping(ctx context.Context, dep Dependency) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := dep.Pinger.Ping(ctx); err != nil {
		c.logger.WarnContext(ctx, "readiness ping failed", "dependency", dep.Name, "error", err)
		c.up.WithLabelValues(dep.Name).Set(0)
		return CheckResult{Status: "down", Error: err.Error()}
	}
	c.up.WithLabelValues(dep.Name).Set(1)
	return CheckResult{Status: "up"}
}

// Handlers maps /healthz and /readyz for metrics.NewServer.
func (c *Checker) Handlers() map[string]http.Handler {
	return map[string]http.Handler{
		"/healthz": probe(c.Liveness),
		"/readyz":  probe(c.Readiness),
	}
}

func probe(check func(context.Context) HealthResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := check(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(result)
	})
}
