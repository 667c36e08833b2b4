package housekeeping

import (
	"time"

	"quickstart/internal/logging"
)

const (
	// DefaultRefreshInterval is used when no interval is configured.
	DefaultRefreshInterval = 24 * time.Hour
	// MinRefreshInterval is the minimum time between refreshes to prevent
	// hammering the upstream repository.
	MinRefreshInterval = 15 * time.Minute
)

// Dependencies defines the required collaborators for the refresh tasks.
type Dependencies struct {
	Schemas  SchemaMirror
	Branches []string
	Interval time.Duration
}

// Service keeps the local schema mirror current by re-fetching the upstream
// schema and prototype files on a fixed interval.
type Service struct {
	Deps   Dependencies
	timer  *time.Timer
	stopCh chan struct{}
}

// NewService creates a new housekeeping service instance.
func NewService(deps Dependencies) *Service {
	if deps.Interval == 0 {
		deps.Interval = DefaultRefreshInterval
	}
	if deps.Interval < MinRefreshInterval {
		deps.Interval = MinRefreshInterval
	}
	return &Service{
		Deps:   deps,
		stopCh: make(chan struct{}),
	}
}

// Start kicks off the background refresh loop.
func (s *Service) Start() {
	logging.Log.Info("Starting background schema refresh service.")
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.runRefresh()
				s.timer.Reset(s.Deps.Interval)
				logging.Log.Debugf("Next schema refresh scheduled in %v.", s.Deps.Interval)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background refresh loop.
func (s *Service) Stop() {
	logging.Log.Info("Stopping background schema refresh service.")
	close(s.stopCh)
}
