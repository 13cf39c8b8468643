package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper is any cache exposing a manual sweep hook.
type Sweeper interface {
	Sweep() int
}

// namedSweeper pairs a cache with a label for logging.
type namedSweeper struct {
	name  string
	cache Sweeper
}

// Scheduler periodically sweeps expired entries out of the registered
// caches. Each cache is swept independently on the shared interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	caches    []namedSweeper
}

// New creates a Scheduler with the given sweep interval.
func New(interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
	}
}

// Register adds a cache to the sweep rotation. Must be called before Start.
func (s *Scheduler) Register(name string, cache Sweeper) {
	s.caches = append(s.caches, namedSweeper{name: name, cache: cache})
}

// Start schedules the periodic sweep job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	if len(s.caches) == 0 {
		log.Println("scheduler: no caches registered; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		for _, c := range s.caches {
			if removed := c.cache.Sweep(); removed > 0 {
				log.Printf("scheduler: swept %d expired entries from %s cache", removed, c.name)
			}
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
