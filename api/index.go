package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/di"
	"venus/shared/logger"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler is the serverless entrypoint. The graph is built and seeded once
// per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.UseEnvironment(cfg)
		logger.SetLogLevel(cfg)

		ctx := context.Background()

		app, _, err := di.InitializeService(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize service")
		}

		if err := app.Seed.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to seed demonstration data")
		}

		handler = app.HTTP.Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
