package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/triply/triply-be/internal/api"
	"github.com/triply/triply-be/internal/auth"
	"github.com/triply/triply-be/internal/config"
	"github.com/triply/triply-be/internal/database"
	"github.com/triply/triply-be/internal/logger"
	"github.com/triply/triply-be/internal/monitoring"
	"github.com/triply/triply-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Ensure the uploads directory exists
	if err := os.MkdirAll(cfg.UploadsPath, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create uploads directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	userService := services.NewUserService(db)
	storyService := services.NewStoryService(db)
	tripService := services.NewTripService(db)
	imageService := services.NewImageService(cfg.UploadsPath)

	// Set up and run the background upload sweeper
	sweeper, err := monitoring.NewSweeper(storyService, cfg.UploadsPath, cfg.SweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.SweepSchedule).Msg("Invalid sweep schedule")
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(tokens, userService, storyService, tripService, imageService, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
