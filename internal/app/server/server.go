package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"bookshelf/internal/app/server/api"
	"bookshelf/internal/app/server/config"
	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/identity"
	"bookshelf/internal/domain/schema"
	"bookshelf/internal/domain/session"
	"bookshelf/internal/domain/user"
	"bookshelf/internal/domain/zone"
	"bookshelf/internal/infrastructure/metrics"
)

const shutdownTimeout = 10 * time.Second

// NewServices wires the domain services on top of the repositories.
func NewServices(repos *Repositories, cfg *config.Config, log *slog.Logger) api.Services {
	issuer := identity.NewIssuer(cfg.Auth.Secret, cfg.Auth.AccessTokenTTL)
	schemas := schema.NewService(repos.Schemas, log)
	zones := zone.NewService(repos.Zones, log)

	return api.Services{
		Users:    user.NewService(repos.Users, user.NewValidator(user.DefaultPolicy()), log),
		Issuer:   issuer,
		Sessions: session.NewService(repos.Sessions, issuer, cfg.Auth.SessionTTL, log),
		Schemas:  schemas,
		Zones:    zones,
		Books:    book.NewService(repos.Books, zones, schemas, log),
	}
}

// Run serves the API until ctx is cancelled, then shuts the server down.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	repos, err := OpenRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.Close()

	handler := api.New(NewServices(repos, cfg, log), metrics.New(), log, repos.Pingers...)
	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server started", "address", cfg.Server.RunAddress, "env", cfg.Env,
			"storage", cfg.Storage.Driver, "documents", cfg.Storage.DocumentStore, "sessions", cfg.Storage.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
