package config

import (
	"fmt"
	"github.com/pkg/errors"
	"log"
	"os"
)

// Level specifies a logger output level.
type Level string

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = "debug"
	// LevelInfo logs generation progress and above.
	LevelInfo Level = "info"
	// LevelWarn logs recoverable anomalies and above.
	LevelWarn Level = "warn"
	// LevelError logs only fatal and invariant-violation conditions.
	LevelError Level = "error"
)

var (
	// CurrentLevel is the level set by InitLogger.
	CurrentLevel Level

	loggerDebug = log.New(os.Stdout, "DEBUG: ", log.Ltime|log.Lshortfile)
	loggerInfo  = log.New(os.Stdout, "INFO: ", log.Ltime|log.Lshortfile)
	loggerWarn  = log.New(os.Stdout, "WARN: ", log.Ltime|log.Lshortfile)
	loggerError = log.New(os.Stderr, "ERROR: ", log.Ltime|log.Lshortfile)

	// Debug logs a debug-level message, used for recoverable no-ops such as
	// an empty-collection random selection.
	Debug = func(message string) {
		if accepts(CurrentLevel, LevelDebug) {
			_ = loggerDebug.Output(2, message)
		}
	}
	// Info logs generation-level progress.
	Info = func(message string) {
		if accepts(CurrentLevel, LevelInfo) {
			_ = loggerInfo.Output(2, message)
		}
	}
	// Warn logs non-fatal invariant anomalies, such as a duplicate
	// connection tuple surviving a mutation.
	Warn = func(message string) {
		if accepts(CurrentLevel, LevelWarn) {
			_ = loggerWarn.Output(2, message)
		}
	}
	// ErrorLog logs fatal conditions before the caller aborts the run.
	ErrorLog = func(message string) {
		if accepts(CurrentLevel, LevelError) {
			_ = loggerError.Output(2, message)
		}
	}
)

// InitLogger sets the active log level from its string name.
func InitLogger(level string) error {
	switch level {
	case "debug":
		CurrentLevel = LevelDebug
	case "info":
		CurrentLevel = LevelInfo
	case "warn":
		CurrentLevel = LevelWarn
	case "error":
		CurrentLevel = LevelError
	case "":
		CurrentLevel = LevelInfo
	default:
		return errors.Errorf("unsupported log level: [%s]", level)
	}
	return nil
}

func accepts(current, target Level) bool {
	switch current {
	case LevelDebug:
		return true
	case LevelInfo:
		return target == LevelInfo || target == LevelWarn || target == LevelError
	case LevelWarn:
		return target == LevelWarn || target == LevelError
	case LevelError:
		return target == LevelError
	}
	_ = loggerError.Output(2, fmt.Sprintf("unsupported log level set: %q, using debug/info/warn/error", current))
	return false
}
