package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mintforge/packvault/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()

	job := &testJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(job)

	// Wait a bit for workers to process
	time.Sleep(50 * time.Millisecond)

	pool.Stop()

	if atomic.LoadInt32(&executed) != 2 {
		t.Errorf("Expected 2 jobs executed, got %d", executed)
	}
}

func TestPool_FailedJobDoesNotStopWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, 10)
	pool.Start()

	pool.Enqueue(&testJob{executed: &executed, err: errors.New("boom")})
	pool.Enqueue(&testJob{executed: &executed})

	time.Sleep(50 * time.Millisecond)
	pool.Stop()

	if atomic.LoadInt32(&executed) != 2 {
		t.Errorf("Expected 2 jobs executed, got %d", executed)
	}
}

func TestPool_StopReclaimsWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		var executed int32
		pool := NewPool(4, 16)
		pool.Start()

		for i := 0; i < 8; i++ {
			pool.Enqueue(&testJob{executed: &executed})
		}

		time.Sleep(50 * time.Millisecond)
		pool.Stop()
	})
}

func TestPool_TryEnqueueFullQueue(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)
	// Not started: nothing drains the queue.

	if !pool.TryEnqueue(&testJob{executed: &executed}) {
		t.Fatal("expected first enqueue to succeed")
	}
	if pool.TryEnqueue(&testJob{executed: &executed}) {
		t.Error("expected enqueue on a full queue to fail")
	}
}
