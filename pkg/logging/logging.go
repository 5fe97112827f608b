package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is the log file path relative to the XDG state directory
const LogFileName = "vendorcp/vendorcp.log"

// SetupLogger configures the global logger based on verbosity level.
// Console output goes to stderr; with logToFile the same events are also
// appended as JSON to the log file under the XDG state directory.
func SetupLogger(verbosity int, logToFile bool) {
	SetupLoggerWithWriter(os.Stderr, verbosity, logToFile)
}

// SetupLoggerWithWriter is SetupLogger with an explicit console writer
func SetupLoggerWithWriter(console io.Writer, verbosity int, logToFile bool) {
	zerolog.SetGlobalLevel(LevelFor(verbosity))

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    false,
	}

	writers := []io.Writer{consoleWriter}

	var (
		logFile string
		fileErr error
	)
	if logToFile {
		var handle *os.File
		logFile, handle, fileErr = openLogFile()
		if fileErr == nil {
			writers = append(writers, handle)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	// If we couldn't create the log file, log the error now with the new logger
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// LevelFor maps the -v count to a zerolog level
func LevelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogFilePath returns where the log file is written, creating its parent
// directory.
func LogFilePath() (string, error) {
	return xdg.StateFile(LogFileName)
}

func openLogFile() (string, *os.File, error) {
	path, err := LogFilePath()
	if err != nil {
		return path, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return path, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return path, file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
