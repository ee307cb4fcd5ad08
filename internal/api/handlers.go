package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ignite/campaign-insights/internal/pipeline"
	"github.com/ignite/campaign-insights/internal/store"
)

// Handlers wires the HTTP surface to the pipeline. A mutex serializes
// trigger requests: the report table is overwritten wholesale, so two
// concurrent runs would race on the sink.
type Handlers struct {
	runner *pipeline.Runner
	store  *store.ReportStore
	cache  *store.ReportCache
	mu     sync.Mutex
}

func NewHandlers(runner *pipeline.Runner, reportStore *store.ReportStore, cache *store.ReportCache) *Handlers {
	return &Handlers{runner: runner, store: reportStore, cache: cache}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// RunPipeline is the single "run all transforms" trigger. It recognizes no
// parameters; environment and connection configuration live entirely in
// the config layer.
func (h *Handlers) RunPipeline(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.runner.Run(r.Context())
	if err != nil {
		log.Printf("[api] pipeline run failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetReport returns the latest unified report, cache first with a Postgres
// fallback. An empty report is a valid degenerate state, not an error.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		rows, err := h.cache.GetLatest(r.Context())
		if err != nil {
			log.Printf("[api] report cache read failed, falling back to database: %v", err)
		} else if rows != nil {
			writeJSON(w, http.StatusOK, rows)
			return
		}
	}

	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no report store configured"})
		return
	}
	rows, err := h.store.Latest(r.Context())
	if err != nil {
		log.Printf("[api] report read failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] failed to encode response: %v", err)
	}
}
