package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

var ready atomic.Bool

func init() {
	ready.Store(true)
}

// SetReady flips the process-level readiness gate. The entrypoint sets it to
// false before draining connections so load balancers stop routing early.
func SetReady(v bool) {
	ready.Store(v)
}

// Pinger probes an optional external dependency for readiness.
type Pinger interface {
	Ping(ctx context.Context, timeout time.Duration) error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	// Redis is probed when configured; a nil Pinger is reported as ok since
	// the service runs without Redis.
	Redis       Pinger
	PingTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the shutdown gate and dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"service": "ok", "redis": "ok"}
	healthy := true

	if !ready.Load() {
		status["service"] = "shutting down"
		healthy = false
	}
	if h.Redis != nil {
		if err := h.Redis.Ping(r.Context(), h.pingTimeout()); err != nil {
			status["redis"] = err.Error()
			healthy = false
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) pingTimeout() time.Duration {
	if h.PingTimeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.PingTimeout
}
