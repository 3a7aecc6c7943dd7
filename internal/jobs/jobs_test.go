package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libertyfm/libertyfm/internal/config"
)

func TestStartScheduler(t *testing.T) {
	cfg := &config.Config{VerifyInterval: 1}
	cfg.Target.Path = t.TempDir()

	s := StartScheduler(cfg)
	defer s.Stop()

	require.NotNil(t, s)
	assert.Len(t, s.Jobs(), 1, "expected one scheduled verify job")
}

func TestStartSchedulerDisabled(t *testing.T) {
	cfg := &config.Config{VerifyInterval: 0}
	cfg.Target.Path = t.TempDir()

	s := StartScheduler(cfg)
	defer s.Stop()

	assert.Empty(t, s.Jobs(), "a zero interval disables the verify job")
}

func TestVerifyDestinationWithoutCache(t *testing.T) {
	// No cache file means no recorded import; the sweep must be a no-op.
	assert.NotPanics(t, func() {
		VerifyDestination(t.TempDir())
	})
}
