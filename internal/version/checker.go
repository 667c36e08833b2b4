package version

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultRemoteBase is where released VERSION files live, one per branch.
const DefaultRemoteBase = "https://raw.githubusercontent.com/Kometa-Team/Quickstart"

// DefaultCheckInterval is the time between background update checks.
const DefaultCheckInterval = 24 * time.Hour

// Checker periodically compares the running version against the upstream
// VERSION file of the same branch.
type Checker struct {
	Current    Info
	RemoteBase string
	Interval   time.Duration
	Client     *http.Client
	Logger     *logrus.Logger

	mu     sync.RWMutex
	latest string

	timer  *time.Timer
	stopCh chan struct{}
}

func NewChecker(current Info, logger *logrus.Logger) *Checker {
	return &Checker{
		Current:    current,
		RemoteBase: DefaultRemoteBase,
		Interval:   DefaultCheckInterval,
		Client:     &http.Client{Timeout: 30 * time.Second},
		Logger:     logger,
		stopCh:     make(chan struct{}),
	}
}

// Start kicks off the background update check loop. The first check fires
// immediately.
func (c *Checker) Start() {
	c.Logger.Info("Starting background update checker.")
	c.timer = time.NewTimer(0)

	go func() {
		for {
			select {
			case <-c.timer.C:
				if err := c.CheckNow(); err != nil {
					c.Logger.WithError(err).Warn("Update check failed.")
				}
				c.timer.Reset(c.Interval)
			case <-c.stopCh:
				c.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background update check loop.
func (c *Checker) Stop() {
	c.Logger.Info("Stopping background update checker.")
	close(c.stopCh)
}

// CheckNow fetches the upstream VERSION file once and records the result.
func (c *Checker) CheckNow() error {
	url := fmt.Sprintf("%s/%s/VERSION", c.RemoteBase, c.Current.Branch)
	resp, err := c.Client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	latest := strings.TrimSpace(string(body))
	c.mu.Lock()
	c.latest = latest
	c.mu.Unlock()

	if latest != "" && latest != c.Current.Version {
		c.Logger.Infof("Update available: %s (running %s).", latest, c.Current.Version)
	}
	return nil
}

// Latest returns the most recently fetched upstream version, empty until
// the first successful check.
func (c *Checker) Latest() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// UpdateAvailable reports whether upstream carries a different version
// than the running build.
func (c *Checker) UpdateAvailable() bool {
	latest := c.Latest()
	return latest != "" && latest != c.Current.Version
}
