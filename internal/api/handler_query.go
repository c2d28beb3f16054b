package api

import (
	"net/http"

	"schemacat/internal/domain"
)

func (h *Handler) handleConvertQuery(w http.ResponseWriter, r *http.Request) {
	var ast domain.QueryAST
	if err := decodeJSON(r, &ast); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	result, err := h.compiler.Compile(r.Context(), &ast)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
