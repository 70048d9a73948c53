package manager

import (
	"context"
	"time"
)

// beginGeneration acquires the single in-flight slot.
// Returns a release func to be deferred.
func (m *Manager) beginGeneration(ctx context.Context) (func(), error) {
	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	m.waiting.Add(1)
	defer m.waiting.Add(-1)

	var timeout <-chan time.Time
	if m.cfg.MaxWait > 0 {
		timer := time.NewTimer(m.cfg.MaxWait)
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case m.genCh <- struct{}{}:
		return func() { <-m.genCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timeout:
		return func() {}, tooBusyError{modelID: m.cfg.ModelID}
	}
}
