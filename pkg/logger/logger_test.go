package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "抓取失败",
		Data:    logrus.Fields{"source": "InfoQ", "attempt": 2},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2026-10-16 09:00:00] [WARN] [] 抓取失败 attempt=2 source=InfoQ\n", string(out))
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, err := New("debug", path, Rotation{MaxSize: 1})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Info("hello")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "[INFO] [logger_test.go:"))
	assert.Contains(t, string(data), "hello")
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	log, err := New("verbose", "", Rotation{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
