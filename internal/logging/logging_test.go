package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "bookfinder.log")
	logger, closer, err := Setup(Options{File: path, Level: "warn"})
	require.NoError(t, err)

	Component(logger, "catalog").Info("hidden")
	Component(logger, "catalog").Warn("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
	assert.Contains(t, string(data), "component=catalog")
}

func TestSetup_VerboseAndBadLevel(t *testing.T) {
	logger, closer, err := Setup(Options{Level: "error", Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.NoError(t, closer.Close())

	_, _, err = Setup(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestFor_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	base := Component(logger, "search")

	ctx := ContextWithID(context.Background(), "abc-123")
	For(ctx, base).Info("done")
	assert.Contains(t, buf.String(), "request_id=abc-123")

	assert.Same(t, base, For(context.Background(), base))
}
