package session

import (
	"context"
	"time"

	"github.com/kevish-is-building/Startup-co/internal/logger"
)

// Sweeper deletes expired session rows on an interval. Nothing in the
// request path ever garbage-collects, so without it the table grows
// without bound.
type Sweeper struct {
	store    Store
	interval time.Duration
	onSwept  func(count int64)
}

// NewSweeper creates a Sweeper. onSwept may be nil; it receives the
// number of rows removed per pass (metrics hook).
func NewSweeper(store Store, interval time.Duration, onSwept func(count int64)) *Sweeper {
	return &Sweeper{store: store, interval: interval, onSwept: onSwept}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	count, err := s.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		logger.Error("session sweep failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if count > 0 {
		logger.Info("expired sessions swept", map[string]any{
			"count": count,
		})
	}
	if s.onSwept != nil {
		s.onSwept(count)
	}
}
