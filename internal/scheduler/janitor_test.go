package scheduler

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmaren/bookannex/internal/config"
)

func TestJanitorScheduler_StartStop(t *testing.T) {
	s := NewJanitorScheduler(nil, config.Janitor{Enabled: true, Schedule: "0 3 * * *"})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRunTime())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())
}

func TestJanitorScheduler_Disabled(t *testing.T) {
	s := NewJanitorScheduler(nil, config.Janitor{Enabled: false, Schedule: "0 3 * * *"})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestJanitorScheduler_InvalidSchedule(t *testing.T) {
	s := NewJanitorScheduler(nil, config.Janitor{Enabled: true, Schedule: "not a schedule"})

	assert.Error(t, s.Start(context.Background()))
}

func TestJanitorScheduler_StopReleasesWatcher(t *testing.T) {
	s := NewJanitorScheduler(nil, config.Janitor{Enabled: true, Schedule: "0 3 * * *"})

	before := runtime.NumGoroutine()
	require.NoError(t, s.Start(context.Background()))

	// A direct Stop, without cancelling the outer context, must also end
	// the context watcher started in Start.
	s.Stop()
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}

func TestJanitorScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewJanitorScheduler(nil, config.Janitor{Enabled: true, Schedule: "0 3 * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	cancel()
	assert.Eventually(t, func() bool {
		return !s.IsRunning()
	}, 2*time.Second, 10*time.Millisecond)
}
