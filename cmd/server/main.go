package main

import (
	"errors"
	"io/fs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/internal/router"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.GinMode)
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to initialize database")
	}

	r := router.SetupRouter(db.DB, cfg)
	log.Info().Str("addr", cfg.ListenAddr).Str("mode", cfg.GinMode).Msg("portfolio server listening")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
