package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"subtrack/src/util"

	"go.uber.org/zap"
)

// now is swapped in tests to pin "today".
var now = time.Now

func today() time.Time {
	return util.DateOnly(now())
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
