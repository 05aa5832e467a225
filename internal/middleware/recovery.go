package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/justjobs360/fileconverter/internal/logging"
)

// Recovery converts handler panics into a 500 JSON error instead of
// tearing down the connection. The stack is logged server-side only.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Internal server error",
					"code":  "PROCESSING_ERROR",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
