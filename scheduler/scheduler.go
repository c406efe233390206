package scheduler

import (
	"context"
	"log"
	"time"
)

// DefaultInterval is used when Run gets a non-positive interval.
const DefaultInterval = 6 * time.Hour

// Job is one named step of a scheduled pass.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Run executes jobs one after another, once immediately and then on every
// tick, until ctx is cancelled. A failing job is logged and the pass goes on
// with the next one. Passes never overlap.
func Run(ctx context.Context, interval time.Duration, jobs ...Job) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("scheduler: started, interval %v, %d jobs", interval, len(jobs))

	// run one pass right away
	RunOnce(ctx, jobs...)

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: stopping due to context cancelled")
			return
		case <-ticker.C:
			RunOnce(ctx, jobs...)
		}
	}
}

// RunOnce executes every job once in order and reports how many failed.
func RunOnce(ctx context.Context, jobs ...Job) int {
	failed := 0
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return failed
		default:
		}

		start := time.Now()
		if err := job.Run(ctx); err != nil {
			failed++
			log.Printf("scheduler: %s failed after %v: %v", job.Name, time.Since(start).Round(time.Millisecond), err)
			continue
		}
		log.Printf("scheduler: %s done in %v", job.Name, time.Since(start).Round(time.Millisecond))
	}
	return failed
}
