package log

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func Test_Configure_Defaults(t *testing.T) {
	defer Use(logger)
	assert.NoError(t, Configure(Config{}))
	assert.True(t, Logger().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger().Core().Enabled(zapcore.DebugLevel))
}

func Test_Configure_Level(t *testing.T) {
	defer Use(logger)
	assert.NoError(t, Configure(Config{Level: "WARN", Format: "console"}))
	assert.False(t, Logger().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Logger().Core().Enabled(zapcore.WarnLevel))
}

func Test_Configure_InvalidLevel(t *testing.T) {
	err := Configure(Config{Level: "loud"})
	assert.Equal(t, 103004, ErrorCode(err))
}

func Test_Configure_InvalidFormat(t *testing.T) {
	err := Configure(Config{Format: "xml"})
	assert.Equal(t, "code: 103005 - log.format is invalid. Should be one of: json, console", err.Error())
}

func Test_Err_Wraps(t *testing.T) {
	err := Err(103001, os.ErrNotExist)
	assert.Equal(t, "code: 103001 - file does not exist", err.Error())
	assert.True(t, errors.Is(err, os.ErrNotExist))

	wrapped := fmt.Errorf("outer - %w", err)
	assert.Equal(t, 103001, ErrorCode(wrapped))
	assert.Equal(t, 0, ErrorCode(errors.New("plain")))
}

func Test_Events_GoToGlobalLogger(t *testing.T) {
	defer Use(logger)
	core, logs := observer.New(zapcore.InfoLevel)
	Use(zap.New(core))

	Info("started", zap.String("address", "127.0.0.1:5300"))
	Error("failed", zap.Error(errors.New("nope")))

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "started", entries[0].Message)
	assert.Equal(t, "127.0.0.1:5300", entries[0].ContextMap()["address"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "nope", entries[1].ContextMap()["error"])
}
