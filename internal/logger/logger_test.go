package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud")
	assert.Error(t, err)
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOutput("debug", &buf)
	require.NoError(t, err)
	assert.Equal(t, "debug", log.GetLevel())

	log.With(Fields{"module": "layers"}).Debug("activated")
	assert.Contains(t, buf.String(), "module=layers")
	assert.Contains(t, buf.String(), "activated")
}

func TestEmptyLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOutput("", &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
