package logutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	require.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "autocommit.log")

	logger, closer, err := New("info", path)
	require.NoError(t, err)

	logger.Info().Msg("hello")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hello"`)
}

func TestNewAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autocommit.log")

	logger, closer, err := New("info", path)
	require.NoError(t, err)
	logger.Info().Msg("first run")
	closer()

	logger, closer, err = New("info", path)
	require.NoError(t, err)
	logger.Info().Msg("second run")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
