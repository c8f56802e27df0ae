package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/hordesim/internal/game/episode"
)

// flushTimeout bounds saving of results still buffered at shutdown.
const flushTimeout = 5 * time.Second

// EpisodeSaver persists one result.
type EpisodeSaver interface {
	Save(ctx context.Context, res episode.Result) error
}

// ResultWriter drains episode results from a channel into storage.
// Write failures are logged and dropped.
type ResultWriter struct {
	saver  EpisodeSaver
	in     <-chan episode.Result
	saved  int
	failed int
}

// NewResultWriter creates writer reading from in.
func NewResultWriter(saver EpisodeSaver, in <-chan episode.Result) *ResultWriter {
	return &ResultWriter{saver: saver, in: in}
}

// Run saves results until in is closed or ctx is cancelled. On cancel the
// results already buffered are flushed before returning.
func (w *ResultWriter) Run(ctx context.Context) error {
	slog.Info("result writer started")

	for {
		select {
		case <-ctx.Done():
			w.flush(context.WithoutCancel(ctx))
			slog.Info("result writer stopping", "saved", w.saved, "failed", w.failed)
			return nil

		case res, ok := <-w.in:
			if !ok {
				slog.Info("result writer drained", "saved", w.saved, "failed", w.failed)
				return nil
			}
			w.save(ctx, res)
		}
	}
}

func (w *ResultWriter) flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	for {
		select {
		case res, ok := <-w.in:
			if !ok {
				return
			}
			w.save(ctx, res)
		default:
			return
		}
	}
}

func (w *ResultWriter) save(ctx context.Context, res episode.Result) {
	if err := w.saver.Save(ctx, res); err != nil {
		w.failed++
		slog.Error("saving episode result", "episode", res.ID, "err", err)
		return
	}
	w.saved++
}

// Saved returns number of results stored.
func (w *ResultWriter) Saved() int {
	return w.saved
}

// Failed returns number of results dropped on error.
func (w *ResultWriter) Failed() int {
	return w.failed
}
