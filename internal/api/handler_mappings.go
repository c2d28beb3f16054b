package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"schemacat/internal/domain"
)

type replaceFieldMappingsRequest struct {
	FieldMappings []domain.CreateFieldMappingRequest `json:"fieldMappings"`
}

func (h *Handler) handleCreateMapping(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMappingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	detail, err := h.mappings.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

func (h *Handler) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	detail, err := h.mappings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	if err := h.mappings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListSchemaMappings(w http.ResponseWriter, r *http.Request) {
	details, err := h.mappings.ListBySchema(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) handleListFieldMappings(w http.ResponseWriter, r *http.Request) {
	details, err := h.mappings.FieldMappings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) handleFieldMappingsFor(w http.ResponseWriter, r *http.Request) {
	details, err := h.mappings.FieldMappingsFor(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "collectionID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) handleReplaceFieldMappings(w http.ResponseWriter, r *http.Request) {
	var req replaceFieldMappingsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	detail, err := h.mappings.ReplaceFieldMappings(r.Context(), chi.URLParam(r, "id"), req.FieldMappings)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
