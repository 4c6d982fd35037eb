package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/budgetgarden/budgetgarden/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, dependencies, router, and server lifecycle.
type Application struct {
	cfg  config.Application
	deps *Dependencies
	srv  *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	deps, err := BuildDependencies(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	srv := &http.Server{
		Handler:      NewRouter(deps, cfg),
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		WriteTimeout: cfg.Suggestion.Timeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, srv: srv}, nil
}

func (a *Application) Dependencies() *Dependencies {
	return a.deps
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully and releases dependencies.
func (a *Application) Run(ctx context.Context) error {
	defer a.deps.Close()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
