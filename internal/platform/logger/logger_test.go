package logger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/forget/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "Warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := logger.ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("writes JSON at configured level", func(t *testing.T) {
		buf := &logger.TestLogBuffer{}
		l, err := logger.Setup(logger.LoggerConfig{Level: "warn", Output: buf})
		require.NoError(t, err)
		require.NotNil(t, l)

		l.Info("hidden")
		l.Warn("shown", "invocation_id", "abc")

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "shown", entries[0]["msg"])
		logger.AssertLogField(t, buf, "invocation_id", "abc")
	})

	t.Run("sets default logger", func(t *testing.T) {
		buf := &logger.TestLogBuffer{}
		_, err := logger.Setup(logger.LoggerConfig{Level: "debug", Output: buf})
		require.NoError(t, err)

		slog.Debug("through default")
		logger.AssertLogContains(t, buf, "through default")
	})

	t.Run("invalid level falls back to info with warning", func(t *testing.T) {
		buf := &logger.TestLogBuffer{}
		l, err := logger.Setup(logger.LoggerConfig{Level: "chatty", Output: buf})
		require.NoError(t, err)

		l.Debug("hidden")
		logger.AssertLogContains(t, buf, "invalid log level configured")
		assert.NotContains(t, buf.String(), "hidden")
	})
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.Default()
	customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_default",
			ctx:      nil,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := logger.WithLogger(context.Background(), customLogger)

		assert.Equal(t, customLogger, logger.FromContext(ctx))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}

func TestGetTestLogger(t *testing.T) {
	l, buf := logger.GetTestLogger(t)
	l.Debug("captured", "key", "value")

	logger.AssertLogContains(t, buf, "captured")
	logger.AssertLogField(t, buf, "key", "value")

	buf.Reset()
	assert.Empty(t, buf.String())
}
