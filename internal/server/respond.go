package server

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondEmpty writes a bodiless success (201 on create, 200 on update,
// 204 on delete).
func respondEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// decodeJSON parses the request body into v. Payloads use pointer fields so
// handlers can tell a missing key from a zero value.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
