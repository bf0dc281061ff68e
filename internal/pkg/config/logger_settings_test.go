//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerSettingsValidation(t *testing.T) {
	rotated := func(level string) *LoggerSettings {
		return &LoggerSettings{
			LogLevel:   level,
			LogType:    LogTypeFile,
			FilePath:   "/var/log/fips-provider/bridge.log",
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     90,
		}
	}

	tests := []struct {
		name          string
		settings      *LoggerSettings
		expectedError bool
	}{
		{"console", &LoggerSettings{LogLevel: LogLevelWarning, LogType: LogTypeConsole}, false},
		{"console critical", &LoggerSettings{LogLevel: LogLevelCritical, LogType: LogTypeConsole}, false},
		{"rotated file", rotated(LogLevelDebug), false},
		{"unknown level", &LoggerSettings{LogLevel: "trace", LogType: LogTypeConsole}, true},
		{"unknown sink", &LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"}, true},
		{"file without path", func() *LoggerSettings { s := rotated(LogLevelInfo); s.FilePath = ""; return s }(), true},
		{"file without rotation", &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "bridge.log"}, true},
		{"rotation out of range", func() *LoggerSettings { s := rotated(LogLevelInfo); s.MaxBackups = 11; return s }(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
