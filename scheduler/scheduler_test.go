package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) job(name string, err error) Job {
	return Job{Name: name, Run: func(ctx context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name)
		return err
	}}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestRunOnceKeepsOrderAndContinuesAfterFailure(t *testing.T) {
	rec := &recorder{}
	failed := RunOnce(context.Background(),
		rec.job("sync", errors.New("feed down")),
		rec.job("detect", nil),
	)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"sync", "detect"}, rec.snapshot())
}

func TestRunOnceStopsWhenCancelled(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	RunOnce(ctx, rec.job("sync", nil))
	assert.Empty(t, rec.snapshot())
}

func TestRunRepeatsUntilCancelled(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Run(ctx, 10*time.Millisecond, rec.job("sync", nil), rec.job("detect", nil))
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(rec.snapshot()) >= 4 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	calls := rec.snapshot()
	assert.Equal(t, "sync", calls[0])
	assert.Equal(t, "detect", calls[1])
	assert.Equal(t, "sync", calls[2])
}
