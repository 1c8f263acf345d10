package handlers

import (
	"encoding/json"
	"net/http"
)

// respond writes a JSON body with the given status.
func respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes the standard {error: true, message} envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
	})
}
