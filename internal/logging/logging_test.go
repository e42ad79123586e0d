package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_InfoLevelByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug().Msg("hidden detail")
	logger.Info().Msg("creating virtual environment")

	out := buf.String()
	assert.NotContains(t, out, "hidden detail")
	assert.Contains(t, out, "creating virtual environment")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must not be colored")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug().Str("path", "/tmp/app").Msg("checking venv")

	assert.Contains(t, buf.String(), "checking venv")
	assert.Contains(t, buf.String(), "/tmp/app")
}

// TestContextRoundTrip verifies that the logger placed in a context is the
// one packages retrieve, tagged with their component name.
func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, false))

	log := Component(ctx, "venv")
	log.Info().Msg("ready")

	assert.Contains(t, buf.String(), "component=venv")
	assert.Contains(t, buf.String(), "ready")
}

func TestFromContext_MissingLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
