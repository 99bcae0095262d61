package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/roster/pkg/logging"
)

func TestFromContext(t *testing.T) {
	t.Run("falls back to default", func(t *testing.T) {
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	})

	t.Run("returns stored logger", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		logging.Ctx(ctx).Info().Msg("hello")
		assert.True(t, tl.Contains("hello"))
	})
}

func TestWithRunID(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRunID(ctx, "run-123")
	ctx = logging.WithFile(ctx, "data/users.xml")
	ctx = logging.WithFormat(ctx, "xml")

	assert.Equal(t, "run-123", logging.RunID(ctx))

	logging.FromContext(ctx).Info().Msg("parsed")
	assert.True(t, tl.Contains(`"run_id":"run-123"`))
	assert.True(t, tl.Contains(`"file":"data/users.xml"`))
	assert.True(t, tl.Contains(`"format":"xml"`))
	assert.Len(t, tl.Lines(), 1)
}

func TestRunIDMissing(t *testing.T) {
	assert.Empty(t, logging.RunID(context.Background()))
}
