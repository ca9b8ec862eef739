package parksite

import (
	"context"
	"time"
)

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status  string            `json:"status"` // "ok" or "degraded"
	Checks  map[string]string `json:"checks"` // component → "ok"/"error"
	Version string            `json:"version"`
}

// Healthy reports whether every component is up.
func (h HealthStatus) Healthy() bool { return h.Status == "ok" }

// Health fetches the service health. A degraded service answers 503 with a
// regular body, which is returned without error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	start := time.Now()
	var out HealthStatus
	err := c.getJSON(ctx, "/health", nil, &out, 503)
	c.obs.observe("health", start, err)
	return out, err
}
