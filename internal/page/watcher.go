package page

import (
	"context"
	"sync"
	"time"

	"quiz_answer_llm/internal/config"

	"go.uber.org/zap"
)

// Watcher polls a Source and hands every snapshot with a question to a
// Listener. Listeners run concurrently with the polling loop.
type Watcher struct {
	interval time.Duration
	logger   *zap.Logger
}

func NewWatcher(cfg config.Config, logger *zap.Logger) *Watcher {
	return &Watcher{
		interval: cfg.PollInterval,
		logger:   logger.Named("watcher"),
	}
}

func (w *Watcher) WithInterval(interval time.Duration) *Watcher {
	if interval <= 0 {
		return w
	}
	cp := *w
	cp.interval = interval
	return &cp
}

// Run blocks until ctx is done, then waits for in-flight listeners.
func (w *Watcher) Run(ctx context.Context, src Source, listener Listener) error {
	interval := w.interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("watching for new questions", zap.Duration("interval", interval))
	for {
		w.poll(ctx, src, listener, &wg)

		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll(ctx context.Context, src Source, listener Listener, wg *sync.WaitGroup) {
	snap, err := src.Snapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("page snapshot failed", zap.Error(err))
		}
		return
	}
	if !snap.HasQuestion() {
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		listener.OnContentChanged(ctx, snap)
	}()
}
