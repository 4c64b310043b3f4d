package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogDefaultsToNop(t *testing.T) {
	// Safe to log before InitLogger runs.
	assert.NotNil(t, Log)
	Log.Info("dropped on the floor")
}

func TestInitLogger(t *testing.T) {
	defer os.Remove("test.log")

	cfg := &Config{
		Level:      "DEBUG",
		Filename:   "test.log",
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
		Compress:   false,
	}

	err := InitLogger(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, Log)

	Log.Info("execution completed")
	Sync()

	info, err := os.Stat("test.log")
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:    "INVALID",
		Filename: "test_invalid.log",
	}

	err := InitLogger(cfg)
	assert.Error(t, err)
}
