package httpapi

import (
	"net/http"

	"event-console/console-svc/internal/domain"
)

func (h *Handler) listPlaces(kind domain.PlaceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		places, err := h.Places.List(r.Context(), kind)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, places)
	}
}

func (h *Handler) createPlace(kind domain.PlaceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.PlaceInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		place, err := h.Places.Create(r.Context(), kind, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, place)
	}
}

func (h *Handler) updatePlace(kind domain.PlaceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var in domain.PlaceInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		place, err := h.Places.Update(r.Context(), kind, id, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, place)
	}
}

func (h *Handler) deletePlace(kind domain.PlaceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := h.Places.Delete(r.Context(), kind, id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
