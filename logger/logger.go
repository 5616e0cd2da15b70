// Package logger configures the global zerolog logger from the environment.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init sets the global level from LOG_LEVEL (info by default) and writes to the console,
// and also to LOG_FILE when it is set. The returned func closes the log file, if any.
func Init() (closeLog func()) {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zerolog.SetGlobalLevel(Level(os.Getenv("LOG_LEVEL")))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: milliTimeFormat,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	log.Logger = log.Output(console).With().Timestamp().Logger()
	closeLog = func() {}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Warn().Err(err).Str("file", logFile).Msg("failed to open log file, logging to console only")
		} else {
			log.Logger = log.Output(io.MultiWriter(console, f)).With().Timestamp().Logger()
			closeLog = func() {
				if err := f.Close(); err != nil {
					log.Warn().Err(err).Str("file", logFile).Msg("failed to close log file")
				}
			}
		}
	}

	log.Debug().Str("level", zerolog.GlobalLevel().String()).Msg("logger initialized")
	return closeLog
}

// Level parses a level name, falling back to info.
func Level(name string) zerolog.Level {
	if name == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
