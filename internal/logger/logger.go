package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dondi-c/church-finder/internal/config"
)

// Setup initializes the global zerolog logger. Development gets a console
// writer, everything else gets JSON. When LogFile is set the output is also
// written to a rotating file.
func Setup(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = New(cfg, os.Stdout)
}

// New builds a logger writing to out (plus the rotating file, if configured).
func New(cfg *config.Config, out io.Writer) zerolog.Logger {
	var console io.Writer = out
	if cfg.LogFormat == "text" {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{console}
	if cfg.LogFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Str("service", "church-finder").
		Logger()
}
