package bridge

import (
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/logging"
	"go.uber.org/zap"
)

const (
	// DefaultPollInterval is how often each display's snapshot is rebuilt
	DefaultPollInterval = 30 * time.Second

	// pollAttempts bounds how many times one cycle retries a failed fetch
	pollAttempts = 2
)

// Update is the outcome of one poll cycle for one display. On a failed
// cycle Snapshot carries the last good snapshot (nil if there never was
// one) with Stale set.
type Update struct {
	Display  string
	Snapshot *display.Snapshot
	Stale    bool
	Err      error
}

type fetchFunc func() (*display.Snapshot, error)

// Poller refreshes one display's snapshot on a fixed interval and emits
// the result on the shared updates channel.
type Poller struct {
	name     string
	fetch    fetchFunc
	interval time.Duration
	updates  chan<- Update

	mu      sync.Mutex
	last    *display.Snapshot
	stale   bool
	lastErr error

	kick chan struct{}
	stop chan struct{}
	done chan struct{}
}

func newPoller(name string, fetch fetchFunc, interval time.Duration, updates chan<- Update) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		name:     name,
		fetch:    fetch,
		interval: interval,
		updates:  updates,
		kick:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop. The first cycle runs immediately so
// subscribers see state without waiting out a full interval.
func (p *Poller) Start() {
	go p.run()
}

// Stop halts the poll loop and waits for it to finish
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
}

// Refresh schedules an immediate poll cycle, coalescing with one already
// pending. Used after a command so state reflects the change without
// waiting for the next interval.
func (p *Poller) Refresh() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Status returns the most recent snapshot, its staleness flag and the
// last cycle error.
func (p *Poller) Status() (*display.Snapshot, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.stale, p.lastErr
}

func (p *Poller) run() {
	defer close(p.done)

	p.poll()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-p.kick:
			p.poll()
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	var snap *display.Snapshot

	err := retry.Do(func() error {
		s, fetchErr := p.fetch()
		if fetchErr != nil {
			return fetchErr
		}
		snap = s
		return nil
	},
		retry.Attempts(pollAttempts),
		retry.OnRetry(func(n uint, err error) {
			logging.Warn("Snapshot refresh failed, retrying",
				zap.String("display", p.name),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
		retry.LastErrorOnly(true),
	)

	p.mu.Lock()
	if err != nil {
		p.stale = true
		p.lastErr = err
	} else {
		p.last = snap
		p.stale = false
		p.lastErr = nil
	}
	update := Update{Display: p.name, Snapshot: p.last, Stale: p.stale, Err: err}
	p.mu.Unlock()

	if err != nil {
		logging.Warn("Poll cycle failed",
			zap.String("display", p.name),
			zap.Error(err))
	} else {
		logging.Debug("Poll cycle complete", zap.String("display", p.name))
	}

	select {
	case p.updates <- update:
	case <-p.stop:
	}
}
