package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"trace":   logrus.TraceLevel,
		"":        logrus.InfoLevel,
		"chatty":  logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, GetLevel(in), "GetLevel(%q)", in)
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "fit")

	closer := Setup(Params{File: path, Level: "info"})
	logrus.WithField("plan", 3).Info("checked in")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "checked in"))
	assert.True(t, strings.Contains(string(data), "plan=3"))
}

func TestSetup_DebugOverridesLevel(t *testing.T) {
	closer := Setup(Params{Level: "error", Debug: true})
	defer closer.Close()
	t.Cleanup(func() { Setup(Params{}) })

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetup_NoFileDiscards(t *testing.T) {
	closer := Setup(Params{Level: "warn"})
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}
