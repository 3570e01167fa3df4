package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/seqtools/ngsconf/internal/config"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// ConfigSource provides the active resolved configuration snapshot and the
// ability to re-resolve it from its sources. *config.Store satisfies it.
type ConfigSource interface {
	Snapshot() *config.Resolved
	Reload() error
}

// Handler wires the configuration store into the read-only inspection
// endpoints.
type Handler struct {
	store ConfigSource

	clock func() time.Time

	mu         sync.RWMutex
	reloadedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler over the provided configuration store.
func NewHandler(store ConfigSource, opts ...HandlerOption) *Handler {
	h := &Handler{
		store: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.reloadedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, h.store.Snapshot().Root())
}

func (h *Handler) handleGetConfigValue(w http.ResponseWriter, r *http.Request) {
	raw := strings.Trim(r.PathValue("path"), "/")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "a configuration key path is required")
		return
	}
	keys := strings.Split(raw, "/")

	value, err := h.store.Snapshot().Lookup(keys...)
	if err != nil {
		var keyErr *config.KeyError
		if errors.As(err, &keyErr) {
			writeError(w, http.StatusNotFound, "Unknown configuration key", keyErr.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	resp := configValueResponse{
		Path:  strings.Join(keys, "."),
		Value: value,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetExecutables(w http.ResponseWriter, r *http.Request) {
	_ = r
	value, err := h.store.Snapshot().Mapping("executables")
	if err != nil {
		var keyErr *config.KeyError
		if errors.As(err, &keyErr) {
			writeError(w, http.StatusNotFound, "No executables registered", keyErr.Error())
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	_ = r
	if err := h.store.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, "Reload failed", err.Error(),
			"the previously active configuration remains in effect")
		return
	}

	h.markReloaded()

	resp := reloadResponse{
		Status:     "reloaded",
		ReloadedAt: h.currentReloadedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentReloadedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reloadedAt
}

func (h *Handler) markReloaded() {
	h.mu.Lock()
	h.reloadedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type configValueResponse struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

type reloadResponse struct {
	Status     string    `json:"status"`
	ReloadedAt time.Time `json:"reloadedAt"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
