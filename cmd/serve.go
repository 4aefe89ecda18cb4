package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task_tracker/internal/config"
	"task_tracker/internal/handlers"
	"task_tracker/internal/logger"
	"task_tracker/internal/repository"
	"task_tracker/internal/repository/db"
	"task_tracker/internal/server"
	"task_tracker/internal/service"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
}

func runServe(cfg *config.Config) error {
	// init logger
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	dialect, err := db.ParseDialect(cfg.DB.Driver)
	if err != nil {
		return err
	}

	// open DB
	conn, err := openDB(dialect, cfg.DB, log)
	if err != nil {
		return fmt.Errorf("init %s: %w", dialect, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn, dialect)
	services, err := service.NewService(repos, cfg.Auth, log)
	if err != nil {
		return err
	}
	apiHandler := handlers.NewHandler(services, log, cfg.Stream)

	// start HTTP server
	srv := server.New(cfg.Server, apiHandler.InitRoutes())
	errCh := runHTTPServer(srv, cfg.Server.Addr(), log)

	// graceful shutdown
	return waitForShutdown(errCh, srv, cfg.Server.ShutdownTimeout, log)
}

// openDB initializes the database using configuration.
func openDB(d db.Dialect, cfg config.DBConfig, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "driver", d)
	return db.InitDB(d, cfg.DSN)
}

// runHTTPServer runs the HTTP server in a separate goroutine and reports its exit on the returned channel.
func runHTTPServer(srv *server.Server, addr string, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "addr", addr)
		errCh <- srv.Run()
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a server failure, then stops the server.
func waitForShutdown(errCh <-chan error, srv *server.Server, timeout time.Duration, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}
