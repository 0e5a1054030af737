package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"event-console/observability"
	"event-console/stats-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Stats service.StatsInterface
}

func NewHandler(svc service.StatsInterface) *Handler {
	return &Handler{Stats: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", observability.MetricsHandler()).Methods("GET")
	r.HandleFunc("/api/stats", h.getStats).Methods("GET")
	r.HandleFunc("/api/activity", h.getActivity).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "stats-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Stats.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "build stats failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server Error"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) getActivity(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	events, err := h.Stats.RecentActivity(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "read activity failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server Error"})
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
