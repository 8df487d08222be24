package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestConfigure(t *testing.T) {
	defer Configure(Config{Level: InfoLevel})

	var buf bytes.Buffer
	lgr := Configure(Config{Level: WarnLevel, Output: &buf})

	lgr.Info().Msg("hidden")
	lgr.Warn().Str("component", "test").Msg("shown")

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"test"`)
}
