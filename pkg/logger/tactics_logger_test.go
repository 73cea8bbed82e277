package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestNewWritesServiceAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Output: &buf, Service: "tactics-test"})

	ctx := WithRequestID(context.Background(), "req-1")
	cl := FromContext(ctx, l)
	cl.Info().Str("target", "Sato").Msg("analyzed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tactics-test", entry["service"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "Sato", entry["target"])
	assert.Equal(t, "analyzed", entry["message"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
