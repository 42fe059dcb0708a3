package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/pkg/logger"
)

func TestComponent_AgregaCampos(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "api", Output: &buf})

	zl := l.Component("shift")
	zl.Info().Str("shift_id", "s1").Msg("turno abierto")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "api", entry["service"])
	assert.Equal(t, "shift", entry["component"])
	assert.Equal(t, "s1", entry["shift_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "WARN", Output: &buf})
	l.Info().Msg("no")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("si")
	assert.NotZero(t, buf.Len())
}
