package handler

import (
	"encoding/json"
	"net/http"
)

// HandleHealth handles GET /api/health requests.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "server is running",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func errorDetailsResponse(msg, details string) map[string]string {
	return map[string]string{"error": msg, "details": details}
}
