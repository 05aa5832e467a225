package handlers

import (
	"net/http"

	"github.com/justjobs360/fileconverter/internal/startup"
)

// GetVersion handles GET /version with build metadata.
func (h *Handlers) GetVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, startup.GetBuildInfo())
}
