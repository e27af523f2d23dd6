package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/config"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/dataset"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/logger"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/metrics"
)

func main() {
	_ = godotenv.Load() // loads .env

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.WithField("service", "leads-dashboard").Info("starting service")

	metrics.Register()

	store := dataset.NewStore(cfg.Dataset.Path, log)
	if ds, err := store.Dataset(); err != nil {
		// not fatal: the API degrades to empty views until the file shows up
		log.WithError(err).Warn("dataset unavailable at startup")
	} else {
		log.WithField("rows", len(ds.Leads)).Info("dataset ready")
	}

	mux := newMux(store, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}
