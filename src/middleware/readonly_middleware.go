package middleware

import (
	"net/http"
	"strings"
)

// ReadOnlyMiddleware rejects every mutating request while readOnly is set,
// except for paths under one of the allowed prefixes.
func ReadOnlyMiddleware(readOnly bool, allowedPrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !readOnly {
				next.ServeHTTP(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			for _, p := range allowedPrefixes {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "Read-only mode: only GET requests are allowed")
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Message is a constant; quoting is enough.
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
