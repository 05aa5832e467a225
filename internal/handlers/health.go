package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/justjobs360/fileconverter/internal/convert"
	"github.com/justjobs360/fileconverter/internal/startup"
)

// HealthResponse is the full health payload served at /api/health.
type HealthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	Uptime          string `json:"uptime"`
	GoVersion       string `json:"goVersion"`
	NumCPU          int    `json:"numCpu"`
	Goroutines      int    `json:"goroutines"`
	VipsAvailable   bool   `json:"vipsAvailable"`
	EngineAvailable bool   `json:"engineAvailable"`
}

// HealthCheck reports service health plus pipeline availability. Both
// pipelines degrading does not fail the probe; the API surface still
// serves document conversions.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	engineOK := h.engine != nil && h.engine.Available()

	resp := HealthResponse{
		Status:          "healthy",
		Version:         startup.Version,
		Uptime:          time.Since(h.startTime).Round(time.Second).String(),
		GoVersion:       runtime.Version(),
		NumCPU:          runtime.NumCPU(),
		Goroutines:      runtime.NumGoroutine(),
		VipsAvailable:   convert.IsVipsAvailable(),
		EngineAvailable: engineOK,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, resp)
}

// LivenessCheck is the kubelet liveness probe. Kept deliberately cheap.
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		if _, err := w.Write([]byte("ok")); err != nil {
			return
		}
	}
}

// ReadinessCheck reports whether the server can accept conversions. The
// process is ready as soon as the HTTP stack is up.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, map[string]string{"status": "ready"})
}
