package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hmwm/akina-halo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotter struct {
	snapshots atomic.Int32
	prunes    atomic.Int32
	maxAge    time.Duration
	err       error
}

func (f *fakeSnapshotter) Snapshot(context.Context) (int, error) {
	f.snapshots.Add(1)
	return 1, f.err
}

func (f *fakeSnapshotter) Prune(_ context.Context, maxAge time.Duration) (int64, error) {
	f.prunes.Add(1)
	f.maxAge = maxAge
	return 0, f.err
}

func TestScheduler_ValidateCron(t *testing.T) {
	s := NewScheduler()

	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"*/5 * * * * *", false},
		{"0 0 * * * *", false},
		{"@every 1s", false},
		{"* * * * *", true},
		{"not a cron", true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := s.ValidateCron(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduler_ParseCron(t *testing.T) {
	s := NewScheduler()
	next, err := s.ParseCron("*/5 * * * * *")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), next, 6*time.Second)
}

func TestScheduler_RegisterRejectsInvalid(t *testing.T) {
	s := NewScheduler()
	err := s.Register("bad", "nope", func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Empty(t, s.Entries())
}

func TestScheduler_RegisterReplaces(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Register("job", "*/5 * * * * *", func(context.Context) error { return nil }))
	require.NoError(t, s.Register("job", "0 0 * * * *", func(context.Context) error { return nil }))

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "0 0 * * * *", entries[0].Schedule)

	s.Unregister("job")
	assert.Empty(t, s.Entries())
}

func TestScheduler_RunsTasks(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	require.NoError(t, s.Register("tick", "@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	require.NoError(t, s.Start(context.Background()))
	assert.Error(t, s.Start(context.Background()), "double start")
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := NewScheduler()
	s.Stop()
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	s.Stop()
}

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler()
	wantErr := errors.New("boom")
	require.NoError(t, s.Register("fail", "0 0 * * * *", func(context.Context) error { return wantErr }))

	assert.ErrorIs(t, s.RunNow(context.Background(), "fail"), wantErr)
	assert.Error(t, s.RunNow(context.Background(), "missing"))
}

func TestRegisterAutosave(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s := NewScheduler()
		require.NoError(t, RegisterAutosave(s, config.AutosaveConfig{Enabled: false}, &fakeSnapshotter{}))
		assert.Empty(t, s.Entries())
	})

	t.Run("enabled with retention", func(t *testing.T) {
		s := NewScheduler()
		snap := &fakeSnapshotter{}
		cfg := config.AutosaveConfig{Enabled: true, Schedule: "*/5 * * * * *", Retention: time.Hour}
		require.NoError(t, RegisterAutosave(s, cfg, snap))

		entries := s.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, TaskAutosave, entries[0].Name)
		assert.Equal(t, TaskPruneSnapshot, entries[1].Name)

		require.NoError(t, s.RunNow(context.Background(), TaskAutosave))
		require.NoError(t, s.RunNow(context.Background(), TaskPruneSnapshot))
		assert.Equal(t, int32(1), snap.snapshots.Load())
		assert.Equal(t, int32(1), snap.prunes.Load())
		assert.Equal(t, time.Hour, snap.maxAge)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		s := NewScheduler()
		cfg := config.AutosaveConfig{Enabled: true, Schedule: "bad"}
		assert.Error(t, RegisterAutosave(s, cfg, &fakeSnapshotter{}))
	})
}
