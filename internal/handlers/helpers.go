package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// errorPayload is the structured error body every endpoint returns.
type errorPayload struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorPayload{Error: msg})
}

// storeError maps a record-store failure to a 503 with the driver message
// attached; store failures are surfaced, never masked as empty successes.
func storeError(w http.ResponseWriter, err error) {
	respondError(w, http.StatusServiceUnavailable, "record store unavailable: "+err.Error())
}

// queryInt reads an optional integer parameter; ok=false means the value
// was present but malformed.
func queryInt(r *http.Request, name string) (value *int, ok bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// queryLimit reads a limit parameter clamped to the entity cap.
func queryLimit(r *http.Request, def, max int) (int, bool) {
	n, ok := queryInt(r, "limit")
	if !ok {
		return 0, false
	}
	if n == nil || *n <= 0 {
		return def, true
	}
	if *n > max {
		return max, true
	}
	return *n, true
}
