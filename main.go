package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/db"
	"marketplace/internal/logger"
	"marketplace/internal/router"
	"marketplace/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.InitLogger()
	log.Info().Msg("Starting marketplace backend")

	database := db.InitDB(cfg.DBUrl)
	defer database.Close()

	db.RunMigrations(database)

	r := router.New(cfg, store.NewMySQL(database), log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
