package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/resonate/internal/repositories"
	"github.com/desertthunder/resonate/internal/server"
	"github.com/desertthunder/resonate/internal/shared"
	"github.com/desertthunder/resonate/internal/tasks"
	"github.com/urfave/cli/v3"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the review API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// Serve connects to the database, authenticates the catalog provider and
// runs the HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("cannot serve without catalog credentials: %w", shared.ErrMissingCredentials)
	}

	if port := cmd.Int("port"); port != 0 {
		r.config.Server.Port = int(port)
	}

	db, err := shared.NewDatabase(ctx, r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := r.catalog.Authenticate(ctx); err != nil {
		return fmt.Errorf("failed to authenticate with %s: %w", r.catalog.Name(), err)
	}
	r.logger.Info("catalog provider ready", "provider", r.catalog.Name())

	musicRepo := repositories.NewMusicRepository(db)
	engine := tasks.NewReconcileEngine(musicRepo)

	timeout := r.config.Server.Timeout()
	mux := server.NewMux(r.logger)
	mux.Use(
		server.RequestID(r.logger),
		server.RequestLogger(r.logger),
		server.Recoverer(r.logger),
		server.Timeout(timeout),
	)

	for _, handler := range []server.Handler{
		server.NewHealthHandler(),
		server.NewMusicHandler(musicRepo),
		server.NewReviewsHandler(repositories.NewReviewRepository(db)),
		server.NewUsersHandler(repositories.NewUserRepository(db)),
		server.NewPrivacyHandler(repositories.NewPolicyRepository(db)),
		server.NewSearchHandler(r.catalog, engine),
	} {
		mux.Handle(handler)
	}

	srv := &http.Server{
		Addr:              r.config.Server.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
