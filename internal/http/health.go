package httpapi

import (
	"context"
	"net/http"
	"time"

	"numerus/pkg/platform/httputil"
)

const healthCheckTimeout = 2 * time.Second

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

type namedCheck struct {
	name  string
	check CheckFunc
}

// Health answers liveness probes. With no checks registered it always
// reports ok; otherwise any failing check turns the answer into a 503.
type Health struct {
	checks []namedCheck
}

func NewHealth() *Health {
	return &Health{}
}

// Add registers a named dependency check.
func (h *Health) Add(name string, check CheckFunc) {
	h.checks = append(h.checks, namedCheck{name: name, check: check})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if len(h.checks) == 0 {
		httputil.WriteJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	resp.Checks = make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if err := c.check(ctx); err != nil {
			resp.Checks[c.name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.name] = "ok"
	}
	httputil.WriteJSON(w, status, resp)
}
