package internal

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	fileLogger     *log.Logger
	fileLoggerOnce sync.Once
)

// openFileLogger opens the append-only debug log in the cache directory
func openFileLogger(cacheDir string) *log.Logger {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil
	}

	logPath := filepath.Join(cacheDir, "ytchat.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}

	return log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)
}

// InitLogging enables the file log when configured. Safe to call more than once.
func InitLogging(config *Config) {
	fileLoggerOnce.Do(func() {
		if config.LogFile {
			fileLogger = openFileLogger(config.CacheDir)
		}
	})
}

// SetLogOutput redirects the log, nil disables it
func SetLogOutput(w io.Writer) {
	if w == nil {
		fileLogger = nil
		return
	}
	fileLogger = log.New(w, "", 0)
}

// logf logs a formatted message if logging is enabled
func logf(level, format string, args ...any) {
	if fileLogger == nil {
		return
	}

	fileLogger.Printf("[%s] "+format, append([]any{level}, args...)...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	logf("INFO", format, args...)
}

// LogError logs an error message
func LogError(format string, args ...any) {
	logf("ERROR", format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...any) {
	logf("DEBUG", format, args...)
}
