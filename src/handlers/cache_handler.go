package handlers

import (
	"net/http"

	"subtrack/src/db"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ClearCache drops one cache family, or all of them for "all".
func ClearCache() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "cache_name")
		switch {
		case name == "all":
			db.ClearAllCaches()
		case db.IsCacheFamily(name):
			db.ClearCache(name)
		default:
			writeJSONError(w, http.StatusBadRequest, "unknown cache "+name)
			return
		}
		zap.L().Info("cleared cache", zap.String("cache", name))
		writeJSON(w, http.StatusOK, messageResponse{Message: "Cache cleared"})
	}
}
