package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// LogFileName is created next to the database
const LogFileName = "recipefinder.log"

// OpenLogFile opens (appending) the log file in the same directory as the database
func OpenLogFile(dbPath string) (*os.File, error) {
	logFile := filepath.Join(filepath.Dir(dbPath), LogFileName)
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// NewLogger creates a timestamped logger writing to f with the given prefix
func NewLogger(f *os.File, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
		Level:           level,
	})
}
