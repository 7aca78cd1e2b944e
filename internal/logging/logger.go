package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/certverify/verification/internal/config"
)

// NewLogger creates a structured zerolog.Logger with the service name
// attached to every event.
func NewLogger(cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(os.Stdout).With().Timestamp()

	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}

	logger := ctx.Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
