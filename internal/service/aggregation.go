package service

import (
	"context"
	"errors"
	"time"

	"oneshot/internal/model"
	"oneshot/internal/store"
	"oneshot/internal/window"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultTopN is the length of every top-N list
const DefaultTopN = 10

// AggregationService computes metrics snapshots from a site's raw events.
// Snapshots are recomputed on every call.
type AggregationService struct {
	directory DirectoryServiceInterface
	resolver  *CredentialResolver
	store     store.EventStore
	topN      int
	loc       *time.Location
	now       func() time.Time
}

// NewAggregationService creates a new Aggregation Service. Day and month
// boundaries and bucket keys follow loc.
func NewAggregationService(
	directory DirectoryServiceInterface,
	resolver *CredentialResolver,
	eventStore store.EventStore,
	topN int,
	loc *time.Location,
) *AggregationService {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AggregationService{
		directory: directory,
		resolver:  resolver,
		store:     eventStore,
		topN:      topN,
		loc:       loc,
		now:       time.Now,
	}
}

// Metrics resolves the query to a window relative to now and aggregates it
func (s *AggregationService) Metrics(ctx context.Context, siteID string, q model.MetricsQuery) (*model.MetricsSnapshot, error) {
	w, err := window.ForQuery(q, s.now().In(s.loc))
	if err != nil {
		return nil, err
	}
	return s.Aggregate(ctx, siteID, w)
}

// Aggregate streams the window's events through a single-pass reducer while
// the live visitor count is read concurrently
func (s *AggregationService) Aggregate(ctx context.Context, siteID string, w window.TimeWindow) (*model.MetricsSnapshot, error) {
	site, err := s.directory.LookupByID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	handle, err := s.resolver.Resolve(site)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	acc := newAccumulator(w.Granularity(), s.loc, s.topN)
	live := make(map[string]struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.store.Scan(gctx, *handle, siteID, w.Range(), acc.add)
	})
	g.Go(func() error {
		return s.store.Scan(gctx, *handle, siteID, window.LiveWindow(now).Range(), func(e *model.AnalyticsEvent) error {
			live[e.SessionID] = struct{}{}
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrRead) {
			log.Error().Err(err).Str("site_id", siteID).Str("period", w.Period).Msg("Failed to read events")
		}
		return nil, err
	}

	snap := acc.snapshot(siteID, w)
	snap.LiveVisitors = int64(len(live))
	snap.GeneratedAt = now

	log.Debug().
		Str("site_id", siteID).
		Str("period", w.Period).
		Int64("pageviews", snap.Pageviews).
		Int64("unique_visitors", snap.UniqueVisitors).
		Msg("Metrics aggregated")

	return snap, nil
}
