package httpapi

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"event-console/console-svc/internal/domain"
)

const (
	maxPhotoSize    = 10 << 20
	maxPhotoRequest = 12 << 20
	maxPhotoMemory  = 10 << 20
)

// photoForm is a parsed multipart body carrying text fields and an optional
// photo. cleanup closes the photo and removes any temp files the parser wrote.
type photoForm struct {
	values  url.Values
	photo   *domain.Upload
	cleanup func()
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func readPhotoForm(w http.ResponseWriter, r *http.Request) (*photoForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoRequest)
	if err := r.ParseMultipartForm(maxPhotoMemory); err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			return nil, tooLarge
		}
		return nil, domain.Invalid("invalid multipart body: %v", err)
	}

	form := &photoForm{values: url.Values(r.MultipartForm.Value), cleanup: func() { _ = r.MultipartForm.RemoveAll() }}
	file, header, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		form.cleanup()
		return nil, domain.Invalid("invalid photo: %v", err)
	case header.Size > maxPhotoSize:
		file.Close()
		form.cleanup()
		return nil, domain.Invalid("photo exceeds %d MiB", maxPhotoSize>>20)
	default:
		form.photo = &domain.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
		removeAll := form.cleanup
		form.cleanup = func() {
			file.Close()
			removeAll()
		}
	}
	return form, nil
}

// bodyTooLarge turns a MaxBytesReader overflow into a validation error and
// returns nil for any other error.
func bodyTooLarge(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.Invalid("upload exceeds %d bytes", tooLarge.Limit)
	}
	return nil
}

// slotsFromForm reads either a dateTimes JSON array or a single
// date/startTime/endTime triple.
func slotsFromForm(values url.Values) ([]domain.DateTimeSlot, error) {
	if raw := strings.TrimSpace(values.Get("dateTimes")); raw != "" {
		var slots []domain.DateTimeSlot
		if err := json.Unmarshal([]byte(raw), &slots); err != nil {
			return nil, domain.Invalid("invalid dateTimes: %v", err)
		}
		return slots, nil
	}
	if values.Get("date") == "" && values.Get("startTime") == "" && values.Get("endTime") == "" {
		return nil, nil
	}
	return []domain.DateTimeSlot{{
		Date:      values.Get("date"),
		StartTime: values.Get("startTime"),
		EndTime:   values.Get("endTime"),
	}}, nil
}

// readPerformance decodes a JSON or multipart performance body. The returned
// cleanup must always be called.
func readPerformance(w http.ResponseWriter, r *http.Request) (*domain.Performance, *domain.Upload, func(), error) {
	noop := func() {}
	if !isMultipart(r) {
		var p domain.Performance
		if err := decodeJSON(r, &p); err != nil {
			return nil, nil, noop, err
		}
		return &p, nil, noop, nil
	}

	form, err := readPhotoForm(w, r)
	if err != nil {
		return nil, nil, noop, err
	}
	slots, err := slotsFromForm(form.values)
	if err != nil {
		form.cleanup()
		return nil, nil, noop, err
	}
	return &domain.Performance{
		Artist:      form.values.Get("artist"),
		Description: form.values.Get("description"),
		Venue:       form.values.Get("venue"),
		DateTimes:   slots,
	}, form.photo, form.cleanup, nil
}

func readExperience(w http.ResponseWriter, r *http.Request) (*domain.Experience, *domain.Upload, func(), error) {
	noop := func() {}
	if !isMultipart(r) {
		var e domain.Experience
		if err := decodeJSON(r, &e); err != nil {
			return nil, nil, noop, err
		}
		return &e, nil, noop, nil
	}

	form, err := readPhotoForm(w, r)
	if err != nil {
		return nil, nil, noop, err
	}
	return &domain.Experience{
		Title:       form.values.Get("title"),
		Description: form.values.Get("description"),
		Date:        form.values.Get("date"),
		StartTime:   form.values.Get("startTime"),
		EndTime:     form.values.Get("endTime"),
		Venue:       form.values.Get("venue"),
	}, form.photo, form.cleanup, nil
}

func (h *Handler) listPerformances(w http.ResponseWriter, r *http.Request) {
	performances, err := h.Performances.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, performances)
}

func (h *Handler) getPerformance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.Performances.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) createPerformance(w http.ResponseWriter, r *http.Request) {
	p, photo, cleanup, err := readPerformance(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = 0
	if err := h.Performances.Create(r.Context(), p, photo); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) updatePerformance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, photo, cleanup, err := readPerformance(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = id
	if err := h.Performances.Update(r.Context(), p, photo); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) deletePerformance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Performances.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.Experiences.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experiences)
}

func (h *Handler) getExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.Experiences.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) createExperience(w http.ResponseWriter, r *http.Request) {
	e, photo, cleanup, err := readExperience(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = 0
	if err := h.Experiences.Create(r.Context(), e, photo); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) updateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, photo, cleanup, err := readExperience(w, r)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = id
	if err := h.Experiences.Update(r.Context(), e, photo); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) deleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Experiences.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
