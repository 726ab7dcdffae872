// Package logger: uygulama genelinde kullanılan zerolog kurulumunu toplar.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"mutabakat-backend/internal/config"
)

// New yapılandırmaya göre logger kurar. Development ortamında renkli konsol
// çıktısı, diğer ortamlarda satır başına JSON üretir.
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
