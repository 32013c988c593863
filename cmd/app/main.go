package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/di"
	_ "venus/docs"
	"venus/shared/logger"
)

// @title Vênus API
// @version 1.0
// @description Hotel booking core: accounts, rooms, reservations and notifications.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseEnvironment(cfg)
	logger.SetLogLevel(cfg)

	ctx := context.Background()

	app, cleanup, err := di.InitializeService(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	if err := app.Seed.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed demonstration data")
	}

	app.HTTP.Serve()
}
