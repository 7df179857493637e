// Package dashboard keeps a metrics snapshot fresh for the current selection.
//
// A Poller refreshes on selection and then on a fixed cron schedule. Every
// selection bumps a generation counter; results fetched under an older
// generation are dropped, so a slow response for a previous window can never
// replace the snapshot of the current one.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"oneshot/internal/config"
	"oneshot/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultRefreshInterval is used when the config leaves it unset
const DefaultRefreshInterval = 60 * time.Second

// ErrStopped is returned by Select after Stop
var ErrStopped = errors.New("poller stopped")

// Selection is the site and window being watched
type Selection struct {
	SiteID string
	Query  model.MetricsQuery
}

// Key identifies a selection
func (s Selection) Key() string {
	return s.SiteID + "|" + s.Query.Key()
}

// Update is an applied refresh result. Err is set for a failed refresh; the
// previous snapshot is kept in that case.
type Update struct {
	Generation uint64
	Selection  Selection
	Snapshot   *model.MetricsSnapshot
	Err        error
	FetchedAt  time.Time
}

// Poller refreshes the snapshot of one selection at a time
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	timeout  time.Duration
	onUpdate func(Update)

	mu        sync.Mutex
	cron      *cron.Cron
	entry     cron.EntryID
	scheduled bool
	gen       uint64
	sel       Selection
	selected  bool
	inFlight  bool
	cancel    context.CancelFunc
	current   Update
	stopped   bool
}

// NewPoller creates a Poller. onUpdate is called for every applied result,
// never concurrently and never for a stale generation. It runs with the
// poller locked and must not call back into it.
func NewPoller(fetcher Fetcher, cfg *config.DashboardConfig, onUpdate func(Update)) *Poller {
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if onUpdate == nil {
		onUpdate = func(Update) {}
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		timeout:  cfg.RequestTimeout,
		onUpdate: onUpdate,
		cron:     cron.New(),
	}
}

// Start runs the refresh schedule
func (p *Poller) Start() {
	p.cron.Start()
	log.Info().Dur("interval", p.interval).Msg("Dashboard poller started")
}

// Select switches to sel: the in-flight fetch is cancelled, the schedule is
// restarted and an immediate refresh is issued. It returns the new generation.
func (p *Poller) Select(sel Selection) (uint64, error) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return 0, ErrStopped
	}

	p.gen++
	gen := p.gen
	p.sel = sel
	p.selected = true
	p.current = Update{}
	p.abortLocked()

	if p.scheduled {
		p.cron.Remove(p.entry)
		p.scheduled = false
	}
	entry, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), func() { p.refresh(gen) })
	if err != nil {
		p.mu.Unlock()
		return gen, fmt.Errorf("failed to schedule refresh: %w", err)
	}
	p.entry = entry
	p.scheduled = true
	p.mu.Unlock()

	log.Debug().Str("site_id", sel.SiteID).Str("window", sel.Query.Key()).Uint64("generation", gen).Msg("Dashboard selection changed")

	go p.refresh(gen)
	return gen, nil
}

// Refresh fetches the current selection now unless a fetch is in flight
func (p *Poller) Refresh() {
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()
	p.refresh(gen)
}

// Current returns the last applied update of the current selection
func (p *Poller) Current() (Update, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.current.Generation == p.gen && p.current.Generation != 0
}

// Generation returns the generation of the current selection
func (p *Poller) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Stop cancels the schedule and any in-flight fetch. The returned context is
// done once running cron jobs have finished.
func (p *Poller) Stop() context.Context {
	p.mu.Lock()
	p.stopped = true
	p.gen++
	p.abortLocked()
	p.mu.Unlock()

	return p.cron.Stop()
}

func (p *Poller) abortLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.inFlight = false
}

func (p *Poller) refresh(gen uint64) {
	p.mu.Lock()
	if p.stopped || !p.selected || gen != p.gen {
		p.mu.Unlock()
		return
	}
	if p.inFlight {
		p.mu.Unlock()
		log.Debug().Uint64("generation", gen).Msg("Dashboard refresh skipped, fetch in flight")
		return
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), p.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	p.inFlight = true
	p.cancel = cancel
	sel := p.sel
	p.mu.Unlock()

	snap, err := p.fetcher.Fetch(ctx, sel.SiteID, sel.Query)
	cancel()

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		log.Debug().Uint64("generation", gen).Msg("Dashboard result discarded, selection changed")
		return
	}
	p.inFlight = false
	p.cancel = nil

	update := Update{
		Generation: gen,
		Selection:  sel,
		Err:        err,
		FetchedAt:  time.Now(),
	}
	if err == nil {
		update.Snapshot = snap
	} else {
		update.Snapshot = p.current.Snapshot
		log.Warn().Err(err).Str("site_id", sel.SiteID).Msg("Dashboard refresh failed")
	}
	p.current = update

	// applied under the lock so a newer generation cannot interleave
	p.onUpdate(update)
	p.mu.Unlock()
}
