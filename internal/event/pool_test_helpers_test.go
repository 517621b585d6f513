package event

import (
	"testing"

	"github.com/mintforge/packvault/internal/worker"
)

func newTestPool(t *testing.T) *worker.Pool {
	t.Helper()
	pool := worker.NewPool(1, 4)
	pool.Start()
	t.Cleanup(pool.Stop)
	return pool
}
