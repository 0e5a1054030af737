package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"event-console/console-svc/internal/domain"
	"event-console/console-svc/internal/storage"

	"github.com/gorilla/mux"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", slog.Any("error", err))
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError maps domain errors onto status codes. Anything unexpected is
// logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Invalid or missing credentials")
	default:
		attrs := []any{slog.String("path", r.URL.Path), slog.Any("error", err)}
		if admin := Username(r.Context()); admin != "" {
			attrs = append(attrs, slog.String("admin", admin))
		}
		if code := storage.PQCode(err); code != "" {
			attrs = append(attrs, slog.String("pq_code", code))
		}
		slog.ErrorContext(r.Context(), "request failed", attrs...)
		writeMessage(w, http.StatusInternalServerError, "Server Error")
	}
}

func validationMessage(err error) string {
	msg := strings.Replace(err.Error(), domain.ErrValidation.Error()+": ", "", 1)
	if msg == "" {
		return domain.ErrValidation.Error()
	}
	return msg
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, domain.Invalid("invalid id %q", mux.Vars(r)["id"])
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalid("invalid JSON body: %v", err)
	}
	return nil
}
