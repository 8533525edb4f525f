package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/idilsaglam/tada/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging configures the global zerolog logger and returns it.
// With toFile set, output goes to cfg.LogFile instead of stderr.
func setupLogging(cfg config.Config, stderr io.Writer, toFile bool) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := stderr
	var closer io.Closer = nopCloser{}
	if toFile {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	if cfg.DevMode {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: toFile}
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", "tada").Logger()
	return log.Logger, closer, nil
}
