package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oneshot/internal/config"
	"oneshot/internal/model"
)

type fakeBackend struct {
	mu        sync.Mutex
	events    []model.AnalyticsEvent
	scanErr   error
	insertErr error
	closed    bool
}

func (f *fakeBackend) Insert(_ context.Context, e *model.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeBackend) Scan(_ context.Context, siteID string, tr model.TimeRange, fn func(*model.AnalyticsEvent) error) error {
	f.mu.Lock()
	events := append([]model.AnalyticsEvent(nil), f.events...)
	scanErr := f.scanErr
	f.mu.Unlock()

	if scanErr != nil {
		return scanErr
	}
	for i := range events {
		if events[i].SiteID != siteID || !tr.Contains(events[i].CreatedAt) {
			continue
		}
		if err := fn(&events[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) DeleteSite(_ context.Context, siteID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []model.AnalyticsEvent
	var n int64
	for _, e := range f.events {
		if e.SiteID == siteID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	f.events = kept
	return n, nil
}

func (f *fakeBackend) Migrate(context.Context) error { return nil }
func (f *fakeBackend) Verify(context.Context) error  { return nil }

func (f *fakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func testStoreConfig() *config.StoreConfig {
	return &config.StoreConfig{
		MaxConnections: 8,
		IdleTTL:        time.Minute,
		DialTimeout:    time.Second,
		QueryTimeout:   5 * time.Second,
		Breaker: config.BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			MinRequests:      3,
			FailureThreshold: 0.5,
		},
	}
}

func newFakeRegistry(t *testing.T, backend *fakeBackend) (*Registry, *atomic.Int32) {
	t.Helper()
	return newFakeRegistryWithConfig(t, testStoreConfig(), backend)
}

func newFakeRegistryWithConfig(t *testing.T, cfg *config.StoreConfig, backend *fakeBackend) (*Registry, *atomic.Int32) {
	t.Helper()
	var opens atomic.Int32
	r := NewRegistry(cfg)
	r.Register("fake", func(ctx context.Context, h model.StoreHandle, cfg *config.StoreConfig) (Backend, error) {
		opens.Add(1)
		time.Sleep(10 * time.Millisecond)
		return backend, nil
	})
	t.Cleanup(r.Close)
	return r, &opens
}

func fakeHandle(secret string) model.StoreHandle {
	return model.StoreHandle{SiteID: "site-1", Driver: "fake", URL: "fake://store", Secret: secret}
}

func TestRegistry_WriteAssignsIDAndTimestamp(t *testing.T) {
	backend := &fakeBackend{}
	r, _ := newFakeRegistry(t, backend)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	event := &model.AnalyticsEvent{SiteID: "site-1", EventType: model.EventTypePageview, PageURL: "/"}
	err := r.Write(context.Background(), fakeHandle("secret"), event)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, now, event.CreatedAt)
	require.Len(t, backend.events, 1)
	assert.Equal(t, event.ID, backend.events[0].ID)
}

func TestRegistry_ReusesConnections(t *testing.T) {
	backend := &fakeBackend{}
	r, opens := newFakeRegistry(t, backend)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Write(ctx, fakeHandle("secret"), &model.AnalyticsEvent{SiteID: "site-1"})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), opens.Load())
	assert.Equal(t, 1, r.Len())

	// rotated credentials open a new connection
	require.NoError(t, r.Write(ctx, fakeHandle("rotated"), &model.AnalyticsEvent{SiteID: "site-1"}))
	assert.Equal(t, int32(2), opens.Load())
}

func TestRegistry_IdleTTLCountsFromLastUse(t *testing.T) {
	cfg := testStoreConfig()
	cfg.IdleTTL = 200 * time.Millisecond

	backend := &fakeBackend{}
	r, opens := newFakeRegistryWithConfig(t, cfg, backend)
	ctx := context.Background()

	// busy for three times the TTL
	deadline := time.Now().Add(600 * time.Millisecond)
	for time.Now().Before(deadline) {
		require.NoError(t, r.Write(ctx, fakeHandle("secret"), &model.AnalyticsEvent{SiteID: "site-1"}))
		time.Sleep(40 * time.Millisecond)
	}
	assert.Equal(t, int32(1), opens.Load(), "a busy store keeps its connection")

	// idle past the TTL
	assert.Eventually(t, func() bool { return r.Len() == 0 }, 2*time.Second, 20*time.Millisecond)
	require.NoError(t, r.Write(ctx, fakeHandle("secret"), &model.AnalyticsEvent{SiteID: "site-1"}))
	assert.Equal(t, int32(2), opens.Load())
}

func TestRegistry_UnsupportedDriver(t *testing.T) {
	r := NewRegistry(testStoreConfig())
	defer r.Close()

	h := model.StoreHandle{SiteID: "site-1", Driver: "mongodb", URL: "mongodb://x", Secret: "s"}
	err := r.Write(context.Background(), h, &model.AnalyticsEvent{SiteID: "site-1"})

	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestRegistry_QueryOrderAndRange(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	backend := &fakeBackend{events: []model.AnalyticsEvent{
		{ID: "1", SiteID: "site-1", CreatedAt: base},
		{ID: "2", SiteID: "site-1", CreatedAt: base.Add(time.Minute)},
		{ID: "3", SiteID: "site-2", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "4", SiteID: "site-1", CreatedAt: base.Add(time.Hour)},
	}}
	r, _ := newFakeRegistry(t, backend)

	events, err := r.Query(context.Background(), fakeHandle("secret"), "site-1", model.TimeRange{Start: base, End: base.Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, "2", events[1].ID)
}

func TestRegistry_ScanErrors(t *testing.T) {
	ctx := context.Background()
	tr := model.TimeRange{Start: time.Unix(0, 0), End: time.Now()}

	t.Run("store failure is a read error", func(t *testing.T) {
		r, _ := newFakeRegistry(t, &fakeBackend{scanErr: errors.New("connection reset")})
		err := r.Scan(ctx, fakeHandle("secret"), "site-1", tr, func(*model.AnalyticsEvent) error { return nil })
		assert.ErrorIs(t, err, ErrRead)
	})

	t.Run("consumer error is returned as is", func(t *testing.T) {
		backend := &fakeBackend{events: []model.AnalyticsEvent{{ID: "1", SiteID: "site-1", CreatedAt: time.Unix(10, 0)}}}
		r, _ := newFakeRegistry(t, backend)
		stop := errors.New("stop")
		err := r.Scan(ctx, fakeHandle("secret"), "site-1", tr, func(*model.AnalyticsEvent) error { return stop })
		assert.Equal(t, stop, err)
		assert.NotErrorIs(t, err, ErrRead)
	})
}

func TestRegistry_BreakerOpens(t *testing.T) {
	backend := &fakeBackend{insertErr: errors.New("timeout")}
	r, _ := newFakeRegistry(t, backend)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := r.Write(ctx, fakeHandle("secret"), &model.AnalyticsEvent{SiteID: "site-1"})
		require.ErrorIs(t, err, ErrWrite)
	}

	err := r.Write(ctx, fakeHandle("secret"), &model.AnalyticsEvent{SiteID: "site-1"})
	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestRegistry_DeleteSite(t *testing.T) {
	backend := &fakeBackend{events: []model.AnalyticsEvent{
		{ID: "1", SiteID: "site-1"},
		{ID: "2", SiteID: "site-1"},
		{ID: "3", SiteID: "site-2"},
	}}
	r, _ := newFakeRegistry(t, backend)

	n, err := r.DeleteSite(context.Background(), fakeHandle("secret"), "site-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, backend.events, 1)
}

func TestRegistry_CloseClosesBackends(t *testing.T) {
	backend := &fakeBackend{}
	r, _ := newFakeRegistry(t, backend)

	require.NoError(t, r.Verify(context.Background(), fakeHandle("secret")))
	r.Close()

	assert.True(t, backend.closed)
	assert.Equal(t, 0, r.Len())
}
