package server

import (
	"errors"
	"net/http"

	"mailedit/dom"
	"mailedit/editor"
	"mailedit/jsx"
	"mailedit/styles"
)

type renderResponse struct {
	Source string `json:"source"`
	HTML   string `json:"html"`
}

// handleRenderSource renders unsaved source. The editor uses this for live
// preview while typing.
func (s *Server) handleRenderSource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source string `json:"source"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	tagged, html, err := s.renderTagged(r, req.Source)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, renderResponse{Source: tagged, HTML: html})
}

type selectElementRequest struct {
	Source    string `json:"source"`
	ElementID string `json:"element_id"`
}

// handleSelectElement resolves a clicked element back to its source
// location and returns the full element record: content, style origin,
// author styles, computed styles and the merged editing view. Source must
// be the tagged source a render call returned.
func (s *Server) handleSelectElement(w http.ResponseWriter, r *http.Request) {
	var req selectElementRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}

	tree, err := jsx.Parse(req.Source, s.log)
	if err != nil {
		s.respondError(w, err)
		return
	}
	html, err := s.renderer.Render(r.Context(), req.Source)
	if err != nil {
		s.respondError(w, err)
		return
	}
	doc, err := dom.ParseDocument(html, s.log)
	if err != nil {
		s.respondError(w, err)
		return
	}
	node := doc.FindByElementID(req.ElementID)
	if node == nil {
		s.badRequest(w, "element not present in rendered document")
		return
	}

	defs := styles.ExtractDefinitions(tree, s.log)
	data, err := editor.ExtractElementData(doc, node, tree, defs, s.log)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}

type updateElementRequest struct {
	Source    string         `json:"source"`
	ElementID string         `json:"element_id"`
	Updates   editor.Updates `json:"updates"`
}

type updateElementResponse struct {
	Source      string             `json:"source"`
	Definitions styles.Definitions `json:"definitions"`
	Stale       bool               `json:"stale"`
}

// handleUpdateElement applies content, style and attribute changes to the
// source. A stale element location is not an error: the caller gets the
// source back unchanged with the stale flag set and is expected to
// re-render and retry.
func (s *Server) handleUpdateElement(w http.ResponseWriter, r *http.Request) {
	var req updateElementRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}

	tree, err := jsx.Parse(req.Source, s.log)
	if err != nil {
		s.respondError(w, err)
		return
	}
	defs := styles.ExtractDefinitions(tree, s.log)

	data, err := editor.LocateElement(tree, req.ElementID, defs, s.log)
	if err != nil {
		var stale *editor.StaleLocationError
		if errors.As(err, &stale) {
			// out-of-sync locations are not errors: the caller re-renders
			// and retries with fresh identifiers
			respondJSON(w, http.StatusOK, updateElementResponse{Source: req.Source, Definitions: defs, Stale: true})
			return
		}
		s.respondError(w, err)
		return
	}
	result, err := editor.ApplyUpdates(req.Source, data, req.Updates, s.log)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updateElementResponse{
		Source:      result.Source,
		Definitions: result.Definitions,
		Stale:       result.Stale,
	})
}
