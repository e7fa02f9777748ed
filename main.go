package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dalvguti/family-expenses-be/internal/config"
	"github.com/dalvguti/family-expenses-be/internal/database"
	"github.com/dalvguti/family-expenses-be/internal/router"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	runMigrations := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log.Level)

	// schema changes happen only here, never as a side effect of serving
	if *runMigrations {
		if err := database.Migrate(cfg.Database); err != nil {
			slog.Error("apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied")
		return
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		slog.Error("init database", "error", err)
		os.Exit(1)
	}

	r := router.SetupRouter(cfg, db)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler: r,
	}

	var httpsSrv *http.Server
	if cfg.Server.UseTLS {
		httpsSrv = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.HTTPSPort),
			Handler: r,
		}
	}

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		slog.Info("http server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if httpsSrv != nil {
		g.Go(func() error {
			slog.Info("https server listening", "addr", httpsSrv.Addr, "cert", cfg.Server.TLSCert)
			err := httpsSrv.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			slog.Info("shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
			return nil
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown", "error", err)
		}
		if httpsSrv != nil {
			if err := httpsSrv.Shutdown(shutdownCtx); err != nil {
				slog.Error("https shutdown", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
	}

	// drain the pool before exiting
	if err := database.Close(db); err != nil {
		slog.Error("close database", "error", err)
	}
	slog.Info("server stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
}
