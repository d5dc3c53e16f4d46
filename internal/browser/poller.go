package browser

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/terracarta/terracarta/internal/domain"
)

// PollState is the poller's own lifecycle, layered over the server-side
// version status.
type PollState int

const (
	// PollPending: no snapshot fetched yet.
	PollPending PollState = iota
	// PollRunning: last snapshot was non-terminal; another fetch is due.
	PollRunning
	// PollCompleted: processing finished successfully; polling stopped.
	PollCompleted
	// PollFailed: processing failed; polling stopped, no automatic retry.
	PollFailed
	// PollStalled: the total-duration ceiling was hit while the job was
	// still running. Polling stopped; the job may yet finish server-side.
	PollStalled
)

type PollerConfig struct {
	// Interval between fetches while the job is running.
	Interval time.Duration
	// BackoffAfter is how long polling runs at Interval before the delay
	// starts doubling.
	BackoffAfter time.Duration
	// MaxInterval caps the backed-off delay.
	MaxInterval time.Duration
	// MaxDuration is the total polling ceiling; beyond it the poller
	// stops in the stalled state instead of polling forever.
	MaxDuration time.Duration
}

func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Interval:     5 * time.Second,
		BackoffAfter: 1 * time.Minute,
		MaxInterval:  30 * time.Second,
		MaxDuration:  15 * time.Minute,
	}
}

type VersionPollerDependencies struct {
	Versions domain.VersionService

	// OnComplete fires once per poller run when the job reaches the
	// completed status. A fresh poller for the same version is a fresh
	// subscription and will fire again.
	OnComplete func(domain.Version)
}

// VersionPoller tracks one uploaded version's server-side processing job
// until it reaches a terminal state. It keeps no state beyond the last
// fetched snapshot.
type VersionPoller struct {
	versions   domain.VersionService
	onComplete func(domain.Version)
	cfg        PollerConfig

	versionID string
	state     PollState
	last      domain.VersionState
	started   time.Time
	interval  time.Duration
	now       func() time.Time
}

func NewVersionPoller(versionID string, cfg PollerConfig, deps VersionPollerDependencies) *VersionPoller {
	if cfg.Interval <= 0 {
		cfg = DefaultPollerConfig()
	}
	return &VersionPoller{
		versions:   deps.Versions,
		onComplete: deps.OnComplete,
		cfg:        cfg,
		versionID:  versionID,
		state:      PollPending,
		interval:   cfg.Interval,
		now:        time.Now,
	}
}

// State returns the poller lifecycle state.
func (p *VersionPoller) State() PollState {
	return p.state
}

// Last returns the last fetched processing snapshot.
func (p *VersionPoller) Last() domain.VersionState {
	return p.last
}

// Done reports whether polling has stopped.
func (p *VersionPoller) Done() bool {
	return p.state == PollCompleted || p.state == PollFailed || p.state == PollStalled
}

// Poll fetches one snapshot and returns the delay before the next fetch.
// Once the poller is done, Poll is a no-op that issues no request.
func (p *VersionPoller) Poll(ctx context.Context) (next time.Duration, done bool) {
	if p.Done() {
		return 0, true
	}

	if p.started.IsZero() {
		p.started = p.now()
	} else if p.now().Sub(p.started) > p.cfg.MaxDuration {
		p.state = PollStalled
		log.Warn().Str("version_id", p.versionID).Msg("processing poll ceiling reached, giving up")
		return 0, true
	}

	version, err := p.versions.GetVersion(ctx, p.versionID)
	if err != nil {
		// Transient fetch errors keep the last snapshot and retry on
		// the regular cadence.
		log.Warn().Err(err).Str("version_id", p.versionID).Msg("failed to fetch version state")
		return p.nextDelay(), false
	}

	p.last = version.State

	switch version.State.Status {
	case domain.VersionStatusCompleted:
		p.state = PollCompleted
		if p.onComplete != nil {
			p.onComplete(version)
		}
		return 0, true
	case domain.VersionStatusFailed:
		p.state = PollFailed
		return 0, true
	default:
		p.state = PollRunning
		return p.nextDelay(), false
	}
}

func (p *VersionPoller) nextDelay() time.Duration {
	if p.now().Sub(p.started) > p.cfg.BackoffAfter {
		p.interval *= 2
		if p.interval > p.cfg.MaxInterval {
			p.interval = p.cfg.MaxInterval
		}
	}
	return p.interval
}

// Run polls until the job reaches a terminal state, the ceiling is hit, or
// the context is cancelled. The delay timer is stopped before each
// rescheduling, so fetches never overlap and no timer outlives the run.
func (p *VersionPoller) Run(ctx context.Context) error {
	for {
		delay, done := p.Poll(ctx)
		if done {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
