package handlers

import (
	"net/http"

	"github.com/justjobs360/fileconverter/internal/formats"
)

// formatEntry is one registry row plus its reachable targets.
type formatEntry struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Category   string   `json:"category"`
	MIMETypes  []string `json:"mimeTypes"`
	Extensions []string `json:"extensions"`
	Targets    []string `json:"targets"`
}

// GetFormats handles GET /api/formats and returns the full format
// registry with the compatibility matrix flattened in.
func (h *Handlers) GetFormats(w http.ResponseWriter, r *http.Request) {
	entries := make([]formatEntry, 0, len(formats.All))
	for _, f := range formats.All {
		entries = append(entries, formatEntry{
			ID:         f.ID,
			Label:      f.Label,
			Category:   string(f.Category),
			MIMETypes:  f.MIMETypes,
			Extensions: f.Extensions,
			Targets:    formats.SupportedTargets(f.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, map[string]interface{}{"formats": entries})
}
