package server

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes v as a JSON body with the given status code. Encoding
// failures are unrecoverable at this point (the header is already flushed),
// so they are ignored.
func respondJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
	return nil
}

// respondMsg writes the canonical {"msg": ...} body used for statuses,
// acknowledgements and every error response.
func respondMsg(w http.ResponseWriter, status int, msg string) error {
	return respondJSON(w, status, map[string]string{"msg": msg})
}
