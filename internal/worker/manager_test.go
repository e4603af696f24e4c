package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// loopWorker крутится до остановки
type loopWorker struct {
	*BaseWorker
	started atomic.Bool
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	for w.Pause(ctx, 5*time.Millisecond) {
	}
	return nil
}

// stuckWorker игнорирует Stop
type stuckWorker struct {
	*BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_StartStop(t *testing.T) {
	logger := zap.NewNop()
	m := NewWorkerManager(logger, time.Second)

	w := &loopWorker{BaseWorker: NewBaseWorker("loop", "group", logger)}
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, w.started.Load, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, w.IsStopped())
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop(), 0)
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	logger := zap.NewNop()
	m := NewWorkerManager(logger, 20*time.Millisecond)

	w := &stuckWorker{BaseWorker: NewBaseWorker("stuck", "group", logger), release: make(chan struct{})}
	defer close(w.release)
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	err := m.Stop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestBaseWorker_StopIsIdempotent(t *testing.T) {
	w := NewBaseWorker("w", "g", zap.NewNop())
	assert.False(t, w.IsStopped())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestBaseWorker_PauseInterruptedByContext(t *testing.T) {
	w := NewBaseWorker("w", "g", zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, w.Pause(ctx, time.Minute))
}
