package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"mailedit/assets"
	"mailedit/editor"
	"mailedit/jsx"
	"mailedit/render"
	"mailedit/store"
)

type errorBody struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
	Line  int    `json:"line,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps domain errors to HTTP statuses: missing things are 404,
// author mistakes in template source are 422, malformed requests are 400
// and everything else is a 500.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var (
		syntaxErr *jsx.SyntaxError
		renderErr *render.Error
		staleErr  *editor.StaleLocationError
	)

	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, assets.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &syntaxErr):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Line: syntaxErr.Line})
	case errors.As(err, &renderErr):
		status := http.StatusUnprocessableEntity
		if renderErr.Stage == render.StageEmit {
			status = http.StatusInternalServerError
		}
		respondJSON(w, status, errorBody{Error: err.Error(), Stage: renderErr.Stage})
	case errors.As(err, &staleErr):
		respondJSON(w, http.StatusConflict, errorBody{Error: err.Error(), Line: staleErr.Line})
	case errors.Is(err, editor.ErrMissingIdentifier),
		errors.Is(err, store.ErrEmptyName),
		errors.Is(err, assets.ErrBadName),
		errors.Is(err, assets.ErrUnsupported):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		s.log.Error("Request failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
