package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"event-console/console-svc/internal/bulk"
	"event-console/console-svc/internal/domain"
	"event-console/console-svc/internal/service"
)

const maxBulkRequest = 32 << 20

// bulkImport accepts a multipart "file" field, a JSON array of objects or a
// raw CSV body.
func (h *Handler) bulkImport(entity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBulkRequest)

		report, err := h.runImport(w, r, entity)
		switch {
		case errors.Is(err, service.ErrNoValidRows):
			writeJSON(w, http.StatusBadRequest, report)
		case errors.Is(err, service.ErrBulkInsert):
			slog.ErrorContext(r.Context(), "bulk import failed",
				slog.String("entity", entity),
				slog.String("admin", Username(r.Context())),
				slog.Any("error", err))
			writeMessage(w, http.StatusInternalServerError, "Bulk upload failed")
		case err != nil:
			writeError(w, r, err)
		default:
			writeJSON(w, http.StatusCreated, report)
		}
	}
}

func (h *Handler) runImport(w http.ResponseWriter, r *http.Request, entity string) (*bulk.Report, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		file, _, err := r.FormFile("file")
		if err != nil {
			if tooLarge := bodyTooLarge(err); tooLarge != nil {
				return nil, tooLarge
			}
			return nil, domain.Invalid("a CSV file is required in the \"file\" field")
		}
		defer file.Close()
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		path, cleanup, err := bulk.SpoolUpload(filepath.Join(h.uploadDir(), "tmp"), file)
		defer cleanup()
		if err != nil {
			return nil, err
		}
		spooled, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer spooled.Close()
		return h.Imports.ImportCSV(r.Context(), entity, spooled)

	case "application/json":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, domain.Invalid("read body: %v", err)
		}
		return h.Imports.ImportJSON(r.Context(), entity, data)

	default:
		return h.Imports.ImportCSV(r.Context(), entity, r.Body)
	}
}

func (h *Handler) uploadDir() string {
	if h.UploadDir == "" {
		return os.TempDir()
	}
	return h.UploadDir
}
