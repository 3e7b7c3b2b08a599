package httpapi

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string, details map[string]string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
