package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mailedit/bundle"
	"mailedit/misc"
	"mailedit/scaffold"
)

func (s *Server) handleListBrandKits(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.brands.Kits())
}

func (s *Server) handleGetBrandKit(w http.ResponseWriter, r *http.Request) {
	kit, ok := s.brands.Kit(chi.URLParam(r, "name"))
	if !ok {
		respondJSON(w, http.StatusNotFound, errorBody{Error: "brand kit not found"})
		return
	}
	respondJSON(w, http.StatusOK, kit)
}

func (s *Server) handleListStarters(w http.ResponseWriter, _ *http.Request) {
	names, err := scaffold.List()
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, names)
}

func (s *Server) handleExportBundle(w http.ResponseWriter, r *http.Request) {
	// buffered so a store failure can still produce a clean error response
	var buf bytes.Buffer
	if err := bundle.Export(r.Context(), s.store, &buf, s.log); err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+misc.GetAppName()+`-bundle.zip"`)
	_, _ = io.Copy(w, &buf)
}

func (s *Server) handleImportBundle(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxAssetSize+1))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if len(data) > maxAssetSize {
		s.badRequest(w, "bundle too large")
		return
	}
	imported, err := bundle.ImportReader(r.Context(), s.store, bytes.NewReader(data), int64(len(data)), s.log)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, imported)
}
