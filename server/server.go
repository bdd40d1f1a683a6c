// Package server exposes the editing pipeline over HTTP: template CRUD,
// rendering, element selection and updates, the asset library, brand kits
// and bundle transfer. This is the API the visual editor frontend talks to.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mailedit/assets"
	"mailedit/brandkit"
	"mailedit/config"
	"mailedit/render"
	"mailedit/store"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg      *config.Config
	store    store.Store
	assets   *assets.Library
	brands   brandkit.Provider
	renderer *render.Renderer
	log      *zap.Logger
}

func New(cfg *config.Config, st store.Store, lib *assets.Library, brands brandkit.Provider, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("server")
	return &Server{
		cfg:      cfg,
		store:    st,
		assets:   lib,
		brands:   brands,
		renderer: render.NewRenderer(time.Duration(cfg.Render.TimeoutSec)*time.Second, log),
		log:      log,
	}
}

// Run serves the API until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Listen,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("Listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
