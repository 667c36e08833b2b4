package housekeeping

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeMirror struct {
	mu       sync.Mutex
	branches []string
	err      error
}

func (f *fakeMirror) EnsureCurrent(branch string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.branches = append(f.branches, branch)
	return f.err
}

func (f *fakeMirror) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.branches))
	copy(out, f.branches)
	return out
}

func TestServiceRefreshesOnStart(t *testing.T) {
	mirror := &fakeMirror{}
	svc := NewService(Dependencies{
		Schemas:  mirror,
		Branches: []string{"nightly", "master"},
		Interval: time.Hour,
	})

	svc.Start()
	defer svc.Stop()

	assert.Eventually(t, func() bool {
		return len(mirror.calls()) >= 2
	}, 2*time.Second, 10*time.Millisecond, "expected an immediate refresh of both branches")

	assert.Equal(t, []string{"nightly", "master"}, mirror.calls()[:2])
}

func TestServiceContinuesAfterFailure(t *testing.T) {
	mirror := &fakeMirror{err: assert.AnError}
	svc := NewService(Dependencies{
		Schemas:  mirror,
		Branches: []string{"nightly", "master"},
		Interval: time.Hour,
	})

	svc.Start()
	defer svc.Stop()

	// Both branches are attempted even when every refresh fails.
	assert.Eventually(t, func() bool {
		return len(mirror.calls()) >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestIntervalFloor(t *testing.T) {
	svc := NewService(Dependencies{Schemas: &fakeMirror{}, Interval: time.Second})
	assert.Equal(t, MinRefreshInterval, svc.Deps.Interval)

	svc = NewService(Dependencies{Schemas: &fakeMirror{}})
	assert.Equal(t, DefaultRefreshInterval, svc.Deps.Interval)
}
