package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// uploads are images, not videos; 20 MiB is generous
const maxAssetSize = 20 << 20

func (s *Server) handleListAssets(w http.ResponseWriter, _ *http.Request) {
	list, err := s.assets.List()
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handlePutAsset(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxAssetSize+1))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if len(data) > maxAssetSize {
		s.badRequest(w, "asset too large")
		return
	}
	asset, err := s.assets.Put(chi.URLParam(r, "name"), data)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	rc, mime, err := s.assets.Open(chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", mime)
	_, _ = io.Copy(w, rc)
}

func (s *Server) handleGetThumbnail(w http.ResponseWriter, r *http.Request) {
	rc, err := s.assets.Thumbnail(chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", "image/png")
	_, _ = io.Copy(w, rc)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.assets.Delete(chi.URLParam(r, "name")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
