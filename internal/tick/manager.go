package tick

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/udisondev/combatclasses/internal/model"
)

// DefaultInterval is the scheduler cadence when none is configured.
const DefaultInterval = 500 * time.Millisecond

// TickFunc is invoked once per round for every registered character.
type TickFunc func(id model.FormID)

// TickManager drives the periodic knockback timer: a fixed-rate ticker
// iterating the registered identifier set once per period.
type TickManager struct {
	interval time.Duration
	fn       TickFunc

	mu         sync.RWMutex
	registered map[model.FormID]struct{}

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewTickManager creates a tick manager. A non-positive interval falls back to DefaultInterval.
func NewTickManager(interval time.Duration, fn TickFunc) *TickManager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &TickManager{
		interval:   interval,
		fn:         fn,
		registered: make(map[model.FormID]struct{}),
		stopCh:     make(chan struct{}),
	}
}

// Register adds id to the tick set. Registering twice is a no-op.
func (m *TickManager) Register(id model.FormID) {
	m.mu.Lock()
	_, exists := m.registered[id]
	m.registered[id] = struct{}{}
	m.mu.Unlock()

	if !exists {
		slog.Debug("tick registered", "formID", id)
	}
}

// Unregister removes id so subsequent rounds skip it.
func (m *TickManager) Unregister(id model.FormID) {
	m.mu.Lock()
	_, exists := m.registered[id]
	delete(m.registered, id)
	m.mu.Unlock()

	if exists {
		slog.Debug("tick unregistered", "formID", id)
	}
}

// IsRegistered reports whether id is in the tick set.
func (m *TickManager) IsRegistered(id model.FormID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.registered[id]
	return ok
}

// Count returns number of registered characters.
func (m *TickManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.registered)
}

// Interval returns the tick period.
func (m *TickManager) Interval() time.Duration {
	return m.interval
}

// Start runs the tick loop (blocks until context is canceled or Stop is called).
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped")
			return nil

		case <-ticker.C:
			m.TickAll()
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// TickAll runs one round over a snapshot of the registered set, in
// ascending FormID order. The lock is not held while fn runs, so fn may
// register or unregister.
func (m *TickManager) TickAll() {
	m.mu.RLock()
	ids := make([]model.FormID, 0, len(m.registered))
	for id := range m.registered {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if !m.IsRegistered(id) {
			continue
		}
		m.fn(id)
	}

	if len(ids) > 0 && IsDebugEnabled() {
		slog.Debug("tick round completed", "characters", len(ids))
	}
}
