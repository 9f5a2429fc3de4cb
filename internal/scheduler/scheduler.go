package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is how often a Poller runs its job.
const DefaultPollInterval = time.Second

// Poller runs a single job at a fixed interval on a background cron runner.
// Runs never overlap: a run that is still in progress when the next one is
// due causes that one to be skipped.
type Poller struct {
	Cron     *cron.Cron
	interval time.Duration
}

// NewPoller creates a Poller. Intervals below one second are rounded up by
// the cron runner.
func NewPoller(interval time.Duration) *Poller {
	logger := cron.PrintfLogger(&log.Logger)
	return &Poller{
		Cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		interval: interval,
	}
}

// Start registers job and starts the runner.
func (p *Poller) Start(job func()) error {
	if _, err := p.Cron.AddFunc(fmt.Sprintf("@every %s", p.interval), job); err != nil {
		return fmt.Errorf("register poll job: %w", err)
	}
	p.Cron.Start()
	log.Debug().Dur("interval", p.interval).Msg("poller started")
	return nil
}

// Stop halts the runner and waits for a run in progress to finish.
func (p *Poller) Stop() {
	<-p.Cron.Stop().Done()
	log.Debug().Msg("poller stopped")
}
