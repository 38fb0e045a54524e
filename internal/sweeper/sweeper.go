// Package sweeper runs the periodic expiry pass in the background.
//
// The sweeper wakes on a fixed interval, asks the store to drop every
// task whose deadline has passed, and reports each removal. It takes
// the same store lock as foreground operations, so a sweep can never
// race a concurrent edit. Stop signals the loop and waits for an
// in-flight sweep to finish, so shutdown never tears a write.
package sweeper

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Loboguar4/TaskForge/internal/store"
)

// DefaultInterval is how often the sweep fires unless configured
// otherwise.
const DefaultInterval = 60 * time.Second

// Sweeper owns the background expiry loop for one store.
type Sweeper struct {
	store    *store.Store
	interval time.Duration
	log      *zap.SugaredLogger

	quit chan struct{}
	stop sync.Once
	wg   sync.WaitGroup
}

// New builds a sweeper. A non-positive interval falls back to
// DefaultInterval.
func New(st *store.Store, interval time.Duration, log *zap.SugaredLogger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		store:    st,
		interval: interval,
		log:      log,
		quit:     make(chan struct{}),
	}
}

// Start launches the background loop. The first sweep runs immediately
// so stale tasks don't linger a full interval after startup.
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.SweepOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.SweepOnce()
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop signals the loop to exit and blocks until any in-flight sweep
// has finished. Safe to call more than once.
func (s *Sweeper) Stop() {
	s.stop.Do(func() { close(s.quit) })
	s.wg.Wait()
}

// SweepOnce runs a single expiry pass and logs the outcome. A failed
// persist is logged and skipped; the next pass retries implicitly.
func (s *Sweeper) SweepOnce() {
	removed, err := s.store.Sweep()
	for _, t := range removed {
		s.log.Infow("removed expired task",
			"id", t.ShortID(),
			"title", t.Title,
			"deadline", t.Deadline.Format("2006-01-02 15:04"),
		)
	}
	if err != nil {
		s.log.Warnw("sweep could not persist", "error", err)
	}
}
