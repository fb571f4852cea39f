package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v with the given status. Encoding failures at this
// point can only be programming errors, so they are ignored.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
