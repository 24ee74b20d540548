package db

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/combatclasses/internal/model"
)

// JournalStore persists batches of entries. JournalRepository implements it.
type JournalStore interface {
	Insert(ctx context.Context, entries []model.JournalEntry) error
}

// JournalWriter buffers journal entries and flushes them in batches.
// Record never blocks: when the buffer is full the entry is dropped.
// Implements combatclass.Recorder.
type JournalWriter struct {
	store         JournalStore
	queue         chan model.JournalEntry
	flushInterval time.Duration
	dropped       atomic.Int64
}

// NewJournalWriter creates a writer with the given buffer capacity.
func NewJournalWriter(store JournalStore, bufferSize int, flushInterval time.Duration) *JournalWriter {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	if flushInterval <= 0 {
		flushInterval = 2 * time.Second
	}
	return &JournalWriter{
		store:         store,
		queue:         make(chan model.JournalEntry, bufferSize),
		flushInterval: flushInterval,
	}
}

// Record enqueues entry without blocking.
func (w *JournalWriter) Record(entry model.JournalEntry) {
	select {
	case w.queue <- entry:
	default:
		n := w.dropped.Add(1)
		slog.Warn("journal buffer full, entry dropped",
			"kind", entry.Kind,
			"actor", entry.Actor,
			"dropped_total", n)
	}
}

// Dropped returns the number of entries lost to a full buffer.
func (w *JournalWriter) Dropped() int64 {
	return w.dropped.Load()
}

// Run flushes on every interval and once more when ctx is canceled.
func (w *JournalWriter) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final flush on a fresh context; the run context is already done.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.flush(flushCtx)
			cancel()
			return nil
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// flush drains whatever is queued right now.
func (w *JournalWriter) flush(ctx context.Context) {
	var batch []model.JournalEntry
drain:
	for {
		select {
		case e := <-w.queue:
			batch = append(batch, e)
		default:
			break drain
		}
	}

	if len(batch) == 0 {
		return
	}
	if err := w.store.Insert(ctx, batch); err != nil {
		slog.Error("flushing combat journal", "entries", len(batch), "error", err)
	}
}
