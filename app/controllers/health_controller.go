package controllers

import (
	"context"
	"net/http"
	"time"

	"realestate/app/metrics"
)

// Pinger reports whether the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves GET /healthz
type HealthController struct {
	store   Pinger
	metrics *metrics.HTTPMetrics
}

// NewHealthController creates a new HealthController. m may be nil.
func NewHealthController(store Pinger, m *metrics.HTTPMetrics) *HealthController {
	return &HealthController{store: store, metrics: m}
}

func (hc *HealthController) Show(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := hc.store.Ping(ctx)
	if hc.metrics != nil {
		hc.metrics.SetStoreUp(err == nil)
	}
	if err != nil {
		sendError(w, r, "Health", err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
