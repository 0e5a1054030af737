package httpapi

import (
	"encoding/json"
	"net/http"

	"event-console/console-svc/internal/domain"
)

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, r, err)
		return
	}
	item.ID, item.Position = 0, 0
	if err := h.Menu.Create(r.Context(), &item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) renameMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var item domain.MenuItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, r, err)
		return
	}
	item.ID = id
	if err := h.Menu.Rename(r.Context(), &item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Menu.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reorderMenu accepts the full ordering, either as a bare array or wrapped
// in {"items": [...]}.
func (h *Handler) reorderMenu(w http.ResponseWriter, r *http.Request) {
	var body menuOrder
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Menu.Reorder(r.Context(), body.Items); err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.Menu.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type menuOrder struct {
	Items []domain.MenuPosition
}

func (m *menuOrder) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &m.Items)
	}
	var wrapped struct {
		Items []domain.MenuPosition `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	m.Items = wrapped.Items
	return nil
}
