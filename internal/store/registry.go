package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"oneshot/internal/config"
	"oneshot/internal/model"
	"oneshot/pkg/util"
)

// closeGrace delays closing an evicted backend so in-flight calls can finish
const closeGrace = 30 * time.Second

// Registry implements EventStore by routing each handle to a pooled Backend.
// Backends are keyed by site id plus a hash of the credentials, so updated
// credentials open a fresh connection. No lock is held while dialing.
type Registry struct {
	cfg     *config.StoreConfig
	openers map[string]Opener

	mu       sync.Mutex
	conns    *expirable.LRU[string, Backend]
	breakers *expirable.LRU[string, *gobreaker.CircuitBreaker]
	group    singleflight.Group
	closing  atomic.Bool

	now func() time.Time
}

// NewRegistry creates a registry with the postgres, mysql, clickhouse and
// redis drivers registered
func NewRegistry(cfg *config.StoreConfig) *Registry {
	size := cfg.MaxConnections
	if size <= 0 {
		size = 256
	}

	r := &Registry{
		cfg:     cfg,
		openers: make(map[string]Opener),
		now:     time.Now,
	}
	r.conns = expirable.NewLRU[string, Backend](size, r.onEvict, cfg.IdleTTL)
	r.breakers = expirable.NewLRU[string, *gobreaker.CircuitBreaker](size, nil, cfg.IdleTTL)

	r.Register(DriverPostgres, openSQL)
	r.Register(DriverMySQL, openSQL)
	r.Register(DriverClickHouse, openClickHouse)
	r.Register(DriverRedis, openRedis)

	return r
}

// Register installs or replaces the opener for a driver. Must be called
// before the registry serves requests.
func (r *Registry) Register(driver string, opener Opener) {
	r.openers[driver] = opener
}

// Close closes every pooled backend
func (r *Registry) Close() {
	r.closing.Store(true)
	r.conns.Purge()
}

// Len returns the number of pooled backends
func (r *Registry) Len() int {
	return r.conns.Len()
}

func (r *Registry) onEvict(key string, b Backend) {
	if r.closing.Load() {
		closeBackend(key, b)
		return
	}
	time.AfterFunc(closeGrace, func() {
		// a hit may have put it back between eviction and now
		if cur, ok := r.conns.Peek(key); ok && cur == b {
			return
		}
		closeBackend(key, b)
	})
}

func closeBackend(key string, b Backend) {
	if err := b.Close(); err != nil {
		log.Warn().Err(err).Str("store", key).Msg("Failed to close store backend")
		return
	}
	log.Debug().Str("store", key).Msg("Store backend closed")
}

func cacheKey(h model.StoreHandle) string {
	sum := util.HashFields(h.Driver, h.URL, h.Secret)
	return h.SiteID + ":" + strconv.FormatUint(sum, 16)
}

// backend returns the pooled backend for a handle, opening it on a miss.
// Concurrent misses for the same key share one dial. A hit re-adds the
// entry, which makes IdleTTL count from the last use instead of the dial.
func (r *Registry) backend(ctx context.Context, h model.StoreHandle) (Backend, error) {
	key := cacheKey(h)
	if b, ok := r.conns.Get(key); ok {
		r.conns.Add(key, b)
		return b, nil
	}

	opener, ok := r.openers[h.Driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, h.Driver)
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		if b, ok := r.conns.Get(key); ok {
			return b, nil
		}

		b, err := opener(ctx, h, r.cfg)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		if existing, ok := r.conns.Get(key); ok {
			r.mu.Unlock()
			_ = b.Close()
			return existing, nil
		}
		// an expired entry not yet swept would be replaced without eviction
		r.conns.Remove(key)
		r.conns.Add(key, b)
		r.mu.Unlock()

		log.Info().Str("site_id", h.SiteID).Str("driver", h.Driver).Msg("Opened event store connection")
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Backend), nil
}

func (r *Registry) breaker(h model.StoreHandle) *gobreaker.CircuitBreaker {
	key := cacheKey(h)

	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers.Get(key); ok {
		r.breakers.Add(key, cb)
		return cb
	}

	bc := r.cfg.Breaker
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "store:" + h.SiteID,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Store circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var cbErr *callbackError
			return errors.As(err, &cbErr) || errors.Is(err, context.Canceled)
		},
	})
	r.breakers.Add(key, cb)
	return cb
}

// callbackError marks an error returned by a Scan consumer rather than the store
type callbackError struct {
	err error
}

func (e *callbackError) Error() string { return e.err.Error() }
func (e *callbackError) Unwrap() error { return e.err }

// do runs op against the handle's backend through its circuit breaker
func (r *Registry) do(ctx context.Context, h model.StoreHandle, op func(context.Context, Backend) error) error {
	if r.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.QueryTimeout)
		defer cancel()
	}

	_, err := r.breaker(h).Execute(func() (interface{}, error) {
		b, err := r.backend(ctx, h)
		if err != nil {
			return nil, err
		}
		return nil, op(ctx, b)
	})
	return err
}

// Write persists one event
func (r *Registry) Write(ctx context.Context, h model.StoreHandle, event *model.AnalyticsEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now().UTC()
	}

	err := r.do(ctx, h, func(ctx context.Context, b Backend) error {
		return b.Insert(ctx, event)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Scan streams the site's events in the range by ascending created_at
func (r *Registry) Scan(ctx context.Context, h model.StoreHandle, siteID string, tr model.TimeRange, fn func(*model.AnalyticsEvent) error) error {
	err := r.do(ctx, h, func(ctx context.Context, b Backend) error {
		return b.Scan(ctx, siteID, tr, func(e *model.AnalyticsEvent) error {
			if err := fn(e); err != nil {
				return &callbackError{err: err}
			}
			return nil
		})
	})
	if err == nil {
		return nil
	}

	var cbErr *callbackError
	if errors.As(err, &cbErr) {
		return cbErr.err
	}
	return fmt.Errorf("%w: %w", ErrRead, err)
}

// Query collects the site's events in the range by ascending created_at
func (r *Registry) Query(ctx context.Context, h model.StoreHandle, siteID string, tr model.TimeRange) ([]model.AnalyticsEvent, error) {
	var events []model.AnalyticsEvent
	err := r.Scan(ctx, h, siteID, tr, func(e *model.AnalyticsEvent) error {
		events = append(events, *e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteSite removes every event of the site
func (r *Registry) DeleteSite(ctx context.Context, h model.StoreHandle, siteID string) (int64, error) {
	var deleted int64
	err := r.do(ctx, h, func(ctx context.Context, b Backend) error {
		n, err := b.DeleteSite(ctx, siteID)
		deleted = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return deleted, nil
}

// Migrate creates the events schema in the store
func (r *Registry) Migrate(ctx context.Context, h model.StoreHandle) error {
	err := r.do(ctx, h, func(ctx context.Context, b Backend) error {
		return b.Migrate(ctx)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Verify checks connectivity and the events schema
func (r *Registry) Verify(ctx context.Context, h model.StoreHandle) error {
	err := r.do(ctx, h, func(ctx context.Context, b Backend) error {
		return b.Verify(ctx)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	return nil
}

var _ EventStore = (*Registry)(nil)
