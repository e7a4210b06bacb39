package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fadedpez/dugout/internal/logging"
	"github.com/fadedpez/dugout/pkg/storage"
)

var quiet = logging.NewLoggerTo(io.Discard, logging.DEBUG)

func TestSchedulerRunsTasks(t *testing.T) {
	s := NewScheduler()
	s.SetLogger(quiet)

	var ticks, startup atomic.Int32
	s.AddTask(&Task{
		Name:     "tick",
		Interval: 5 * time.Millisecond,
		Fn: func(context.Context) error {
			ticks.Add(1)
			return errors.New("errors are logged, not fatal")
		},
	})
	s.AddTask(&Task{
		Name:       "startup",
		Interval:   time.Hour,
		RunOnStart: true,
		Fn: func(context.Context) error {
			startup.Add(1)
			return nil
		},
	})
	assert.Equal(t, []string{"tick", "startup"}, s.Tasks())

	s.Start(context.Background())
	s.Start(context.Background()) // second start is a no-op

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()
	s.Stop()

	assert.Equal(t, int32(1), startup.Load())
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ticks.Load(), "no runs after Stop returns")
}

func TestSchedulerStopsWithContext(t *testing.T) {
	s := NewScheduler()
	s.SetLogger(quiet)

	done := make(chan struct{})
	s.AddTask(&Task{
		Name:       "wait",
		Interval:   time.Hour,
		RunOnStart: true,
		Fn: func(ctx context.Context) error {
			<-ctx.Done()
			close(done)
			return ctx.Err()
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not see cancellation")
	}
	s.Stop()
}

type fakeReindexer struct {
	calls atomic.Int32
}

func (f *fakeReindexer) Reindex(context.Context) error {
	f.calls.Add(1)
	return nil
}

func TestMaintenanceTasks(t *testing.T) {
	t.Run("snapshot cleanup only", func(t *testing.T) {
		cleaned := make(chan struct{}, 1)
		history := storage.NewMockStorage(t)
		history.On("CleanupOldSnapshots", mock.Anything, 48*time.Hour).
			Run(func(mock.Arguments) {
				select {
				case cleaned <- struct{}{}:
				default:
				}
			}).
			Return(2, nil)

		m := NewMaintenanceScheduler(history, nil, MaintenanceConfig{SnapshotMaxAge: 48 * time.Hour})
		m.SetLogger(quiet)
		assert.Equal(t, []string{TaskSnapshotCleanup}, m.Tasks())

		m.Start(context.Background())
		select {
		case <-cleaned:
		case <-time.After(time.Second):
			t.Fatal("cleanup did not run on start")
		}
		m.Stop()
		history.AssertCalled(t, "CleanupOldSnapshots", mock.Anything, 48*time.Hour)
	})

	t.Run("with search mirror", func(t *testing.T) {
		history := storage.NewMockStorage(t)
		history.On("CleanupOldSnapshots", mock.Anything, time.Hour).Return(0, nil).Maybe()
		search := &fakeReindexer{}

		m := NewMaintenanceScheduler(history, search, MaintenanceConfig{SnapshotMaxAge: time.Hour})
		m.SetLogger(quiet)
		assert.Equal(t, []string{TaskSnapshotCleanup, TaskSearchReindex}, m.Tasks())

		m.Start(context.Background())
		assert.Eventually(t, func() bool { return search.calls.Load() == 1 }, time.Second, time.Millisecond)
		m.Stop()
	})

	t.Run("nothing to do", func(t *testing.T) {
		m := NewMaintenanceScheduler(nil, nil, MaintenanceConfig{})
		assert.Empty(t, m.Tasks())
	})
}
