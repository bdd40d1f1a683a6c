package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authorize)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.handleListTemplates)
			r.Post("/", s.handleCreateTemplate)
			r.Get("/slug/{slug}", s.handleGetTemplateBySlug)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTemplate)
				r.Delete("/", s.handleDeleteTemplate)
				r.Put("/source", s.handleUpdateTemplateSource)
				r.Put("/name", s.handleRenameTemplate)
				r.Post("/render", s.handleRenderTemplate)
			})
		})

		r.Post("/render", s.handleRenderSource)
		r.Post("/elements/select", s.handleSelectElement)
		r.Post("/elements/update", s.handleUpdateElement)

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", s.handleListAssets)
			r.Post("/{name}", s.handlePutAsset)
			r.Get("/{name}", s.handleGetAsset)
			r.Get("/{name}/thumbnail", s.handleGetThumbnail)
			r.Delete("/{name}", s.handleDeleteAsset)
		})

		r.Get("/brandkits", s.handleListBrandKits)
		r.Get("/brandkits/{name}", s.handleGetBrandKit)
		r.Get("/starters", s.handleListStarters)

		r.Get("/bundle", s.handleExportBundle)
		r.Post("/bundle", s.handleImportBundle)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authorize enforces the configured bearer token on API routes. Without a
// configured token the API is open, which is the local development setup.
func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := string(s.cfg.Server.AuthToken)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			respondJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or missing token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)))
	})
}
