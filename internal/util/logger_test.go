package util

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOutputTextFormat(t *testing.T) {
	var buf bytes.Buffer
	out := NewConsoleOutput(&buf, FormatText)

	err := out.Write(LogEntry{
		Timestamp: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
		Level:     "INFO",
		Message:   "port opened",
		Fields:    map[string]interface{}{"baud": 115200},
	})
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, "2025/03/01 12:30:00")
	assert.Contains(t, line, "[INFO] port opened")
	assert.Contains(t, line, "baud=115200")
}

func TestConsoleOutputJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	out := NewConsoleOutput(&buf, FormatJSON)

	err := out.Write(LogEntry{
		Timestamp: time.Now(),
		Level:     "DEBUG",
		Message:   "device: [Sensor] ok",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
	assert.Contains(t, buf.String(), `"message":"device: [Sensor] ok"`)
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{
		level:  LevelWarn,
		fields: make(map[string]interface{}),
	}
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{
		level:  LevelDebug,
		fields: make(map[string]interface{}),
	}
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.With(Field{Key: "port", Value: "/dev/ttyUSB0"}).Info("connected")
	assert.Contains(t, buf.String(), "port=/dev/ttyUSB0")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, LevelInfo, parseLogLevel("bogus"))
}
