package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawden-app/pawden/internal/api"
	"github.com/pawden-app/pawden/internal/app/keeper"
	"github.com/pawden-app/pawden/internal/app/notify"
	"github.com/pawden-app/pawden/internal/health"
	_ "github.com/pawden-app/pawden/internal/infra/metrics" // Register Prometheus metrics
	"github.com/pawden-app/pawden/internal/infra/sqlite"
)

// Daemon is the core Pawden runtime. It wires together all services.
type Daemon struct {
	Config   Config
	DB       *sqlite.DB
	Keeper   *keeper.Service
	Notifier *notify.Service
	Server   *api.Server
	Health   *health.Checker
}

// New loads config and wires the services.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	notifier := notify.NewService(db)
	keep := keeper.NewService(db, notifier)

	server := api.NewServer(keep, notifier)
	if cfg.API.Metrics {
		server.EnableMetrics()
	}

	checker := health.NewChecker(db, cfg.Storage.Dir)
	server.SetHealthCheck(checker.Err)

	return &Daemon{
		Config:   cfg,
		DB:       db,
		Keeper:   keep,
		Notifier: notifier,
		Server:   server,
		Health:   checker,
	}, nil
}

// Serve runs the HTTP API until the context is cancelled or a shutdown
// signal arrives.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           d.Server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("pawden listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return d.Close()
}

// Close releases daemon resources.
func (d *Daemon) Close() error {
	return d.DB.Close()
}
