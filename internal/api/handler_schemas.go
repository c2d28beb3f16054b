package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"schemacat/internal/domain"
)

type createSchemaRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Version     string               `json:"version,omitempty"`
	Metadata    domain.Metadata      `json:"metadata,omitempty"`
	Fields      []schemaFieldRequest `json:"fields,omitempty"`
}

type schemaFieldRequest struct {
	Name        string               `json:"name"`
	DataType    domain.FieldDataType `json:"dataType,omitempty"`
	Description string               `json:"description,omitempty"`
	IsRequired  bool                 `json:"isRequired,omitempty"`
}

type updateSchemaRequest struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Version     *string         `json:"version,omitempty"`
	Metadata    domain.Metadata `json:"metadata,omitempty"`
}

type updateSchemaFieldRequest struct {
	Name        *string               `json:"name,omitempty"`
	DataType    *domain.FieldDataType `json:"dataType,omitempty"`
	Description *string               `json:"description,omitempty"`
	IsRequired  *bool                 `json:"isRequired,omitempty"`
}

func (h *Handler) handleCreateSchema(w http.ResponseWriter, r *http.Request) {
	var req createSchemaRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	create := domain.CreateLogicalSchemaRequest{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		Metadata:    req.Metadata,
	}
	for _, f := range req.Fields {
		create.Fields = append(create.Fields, domain.CreateLogicalFieldRequest{
			Name:        f.Name,
			DataType:    f.DataType,
			Description: f.Description,
			IsRequired:  f.IsRequired,
		})
	}

	schema, err := h.schemas.Create(r.Context(), create)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, schema)
}

func (h *Handler) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	// ?name= looks one schema up by its unique name.
	if name := r.URL.Query().Get("name"); name != "" {
		schema, err := h.schemas.GetByName(r.Context(), name)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, []domain.LogicalSchema{*schema})
		return
	}

	schemas, err := h.schemas.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas)
}

func (h *Handler) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := h.schemas.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (h *Handler) handleUpdateSchema(w http.ResponseWriter, r *http.Request) {
	var req updateSchemaRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	schema, err := h.schemas.Update(r.Context(), chi.URLParam(r, "id"), domain.UpdateLogicalSchemaRequest{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (h *Handler) handleDeleteSchema(w http.ResponseWriter, r *http.Request) {
	if err := h.schemas.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddSchemaField(w http.ResponseWriter, r *http.Request) {
	var req schemaFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	field, err := h.schemas.AddField(r.Context(), chi.URLParam(r, "id"), domain.CreateLogicalFieldRequest{
		Name:        req.Name,
		DataType:    req.DataType,
		Description: req.Description,
		IsRequired:  req.IsRequired,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, field)
}

func (h *Handler) handleUpdateSchemaField(w http.ResponseWriter, r *http.Request) {
	var req updateSchemaFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	field, err := h.schemas.UpdateField(r.Context(), chi.URLParam(r, "fieldID"), domain.UpdateLogicalFieldRequest{
		Name:        req.Name,
		DataType:    req.DataType,
		Description: req.Description,
		IsRequired:  req.IsRequired,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, field)
}

func (h *Handler) handleDeleteSchemaField(w http.ResponseWriter, r *http.Request) {
	if err := h.schemas.DeleteField(r.Context(), chi.URLParam(r, "fieldID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
