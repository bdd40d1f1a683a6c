package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mailedit/jsx"
	"mailedit/scaffold"
)

type createTemplateRequest struct {
	Name    string `json:"name"`
	Source  string `json:"source,omitempty"`
	Starter string `json:"starter,omitempty"`
	Preview string `json:"preview,omitempty"`
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}

	source := req.Source
	if source == "" {
		starter := req.Starter
		if starter == "" {
			starter = s.cfg.Editor.DefaultStarter
		}
		kit, _ := s.brands.Kit(s.cfg.Editor.DefaultBrandKit)
		var err error
		source, err = scaffold.Generate(starter, scaffold.Params{
			Name:    req.Name,
			Preview: req.Preview,
			Kit:     kit,
		})
		if err != nil {
			s.badRequest(w, err.Error())
			return
		}
	}

	t, err := s.store.Create(r.Context(), req.Name, source)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) templateID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.badRequest(w, "malformed template id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.templateID(w, r)
	if !ok {
		return
	}
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleGetTemplateBySlug(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTemplateSource(w http.ResponseWriter, r *http.Request) {
	id, ok := s.templateID(w, r)
	if !ok {
		return
	}
	var req struct {
		Source string `json:"source"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	t, err := s.store.UpdateSource(r.Context(), id, req.Source)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleRenameTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.templateID(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	t, err := s.store.Rename(r.Context(), id, req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.templateID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderTemplate renders a stored template: the source is tagged with
// element identifiers first, and the tagged source is returned together
// with the HTML so selections can be traced back.
func (s *Server) handleRenderTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.templateID(w, r)
	if !ok {
		return
	}
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	tagged, html, err := s.renderTagged(r, t.Source)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, renderResponse{Source: tagged, HTML: html})
}

func (s *Server) renderTagged(r *http.Request, source string) (tagged, html string, err error) {
	if tagged, err = jsx.InjectIdentifiers(source, s.log); err != nil {
		return "", "", err
	}
	if html, err = s.renderer.Render(r.Context(), tagged); err != nil {
		return "", "", err
	}
	return tagged, html, nil
}
