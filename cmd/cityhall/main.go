// Package main is the entry point for CityHall.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/cityhall/internal/audio"
	"github.com/samdwyer/cityhall/internal/config"
	"github.com/samdwyer/cityhall/internal/game"
	"github.com/samdwyer/cityhall/internal/gamedata"
	"github.com/samdwyer/cityhall/internal/logger"
	"github.com/samdwyer/cityhall/internal/telemetry"
)

func main() {
	// Load .env file for local development
	envErr := godotenv.Load()

	closer, err := logger.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer closer.Close()
	log := logger.Get()

	if envErr != nil {
		// Not fatal - env vars might be set directly
		log.Debug().Err(envErr).Msg(".env file not loaded")
	}

	telemetry.ConfigureEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Telemetry setup failed, running without traces")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("Error shutting down telemetry")
			}
		}()
	}

	opts, err := config.Load(os.Getenv("CITYHALL_CONFIG"))
	if err != nil {
		log.Error().Err(err).Msg("Invalid options")
		fmt.Fprintf(os.Stderr, "Invalid options: %v\n", err)
		os.Exit(1)
	}

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load game data")
		fmt.Fprintf(os.Stderr, "Failed to load game data: %v\n", err)
		os.Exit(1)
	}

	sounds := audio.NewPlayer(log)
	if err := sounds.Init(); err == nil {
		defer sounds.Close()
	}

	g, err := game.New(ctx, game.Config{
		Options: opts,
		Catalog: catalog,
		Sounds:  sounds,
		Log:     log,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize game")
		fmt.Fprintf(os.Stderr, "Failed to initialize game: %v\n", err)
		os.Exit(1)
	}

	if err := g.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Game error")
		fmt.Fprintf(os.Stderr, "Game error: %v\n", err)
		os.Exit(1)
	}
}
