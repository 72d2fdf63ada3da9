package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// livenessMessage is returned by GET / and never touches the database.
const livenessMessage = "KivRims Backend API is running"

// DB is the subset of the connection pool the base handler needs.
type DB interface {
	Ping(ctx context.Context) error
}

// Handler serves the liveness and health endpoints.
type Handler struct {
	db DB
}

// New creates the base Handler.
func New(db DB) *Handler {
	return &Handler{db: db}
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(livenessMessage))
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
