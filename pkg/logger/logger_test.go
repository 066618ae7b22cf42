package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Service: "bekawave", Environment: "production", Level: "debug", Output: &buf})
	t.Cleanup(func() { SetLevel("info") })

	Info(context.Background()).Str("entity", "store").Msg("created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "bekawave", line["service"])
	assert.Equal(t, "production", line["environment"])
	assert.Equal(t, "store", line["entity"])
	assert.Equal(t, "created", line["message"])
	assert.NotContains(t, line, "trace_id")
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("verbose")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
