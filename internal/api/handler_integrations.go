package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"schemacat/internal/domain"
	"schemacat/internal/middleware"
	"schemacat/internal/service"
)

type createIntegrationRequest struct {
	Name          string                  `json:"name"`
	Type          string                  `json:"type"`
	Strategy      string                  `json:"strategy"`
	Configuration domain.DatasourceConfig `json:"configuration"`
	Metadata      domain.Metadata         `json:"metadata,omitempty"`
}

type createIntegrationResponse struct {
	Integration *domain.Integration     `json:"integration"`
	Discovery   *domain.DiscoveryResult `json:"discovery"`
}

type updateIntegrationRequest struct {
	Name          *string                 `json:"name,omitempty"`
	Configuration domain.DatasourceConfig `json:"configuration,omitempty"`
	Metadata      domain.Metadata         `json:"metadata,omitempty"`
	IsActive      *bool                   `json:"isActive,omitempty"`
}

func (h *Handler) handleListDefinitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.Definitions())
}

func (h *Handler) handleCreateIntegration(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	var req createIntegrationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	in, discovery, err := h.integrations.Create(r.Context(), domain.CreateIntegrationRequest{
		UserID:        caller.ID,
		Name:          req.Name,
		Type:          req.Type,
		Strategy:      req.Strategy,
		Configuration: req.Configuration,
		Metadata:      req.Metadata,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createIntegrationResponse{Integration: in, Discovery: discovery})
}

func (h *Handler) handleListIntegrations(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	list, err := h.integrations.List(r.Context(), caller.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetIntegration(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	in, err := h.integrations.Get(r.Context(), caller.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *Handler) handleUpdateIntegration(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	var req updateIntegrationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	in, err := h.integrations.Update(r.Context(), caller.ID, chi.URLParam(r, "id"), domain.UpdateIntegrationRequest{
		Name:          req.Name,
		Configuration: req.Configuration,
		Metadata:      req.Metadata,
		IsActive:      req.IsActive,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *Handler) handleDeleteIntegration(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	if err := h.integrations.Delete(r.Context(), caller.ID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleToggleIntegration(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	in, err := h.integrations.ToggleActive(r.Context(), caller.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *Handler) handleUpdateIntegrationMetadata(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	var meta domain.Metadata
	if err := decodeJSON(r, &meta); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	in, err := h.integrations.UpdateMetadata(r.Context(), caller.ID, chi.URLParam(r, "id"), meta)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *Handler) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	ok, err := h.integrations.TestConnection(r.Context(), caller.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"connected": ok})
}

func (h *Handler) handleDiscover(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	var opts domain.DiscoveryOptions
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &opts); err != nil {
			h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
			return
		}
	}

	result, err := h.integrations.Discover(r.Context(), caller.ID, chi.URLParam(r, "id"), opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListCollections(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	collections, err := h.integrations.Collections(r.Context(), caller.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

func (h *Handler) handleListCollectionFields(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	fields, err := h.integrations.CollectionFields(r.Context(), caller.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}
