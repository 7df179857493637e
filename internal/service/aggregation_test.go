package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"oneshot/internal/mocks"
	"oneshot/internal/model"
	"oneshot/internal/store"
	"oneshot/internal/window"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aggNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func pageview(at time.Time, session, page, referrer string) model.AnalyticsEvent {
	e := model.AnalyticsEvent{
		ID:        fmt.Sprintf("%s-%d", session, at.UnixNano()),
		CreatedAt: at,
		SiteID:    "site-1",
		EventType: model.EventTypePageview,
		PageURL:   page,
		UserAgent: testChromeUA,
		Browser:   "Chrome",
		OS:        "Windows",
		Device:    "Desktop",
		SessionID: session,
	}
	if referrer != "" {
		e.Referrer = &referrer
	}
	return e
}

// scanFrom serves Scan from an in-memory, time-ordered event list
func scanFrom(events []model.AnalyticsEvent) func(context.Context, model.StoreHandle, string, model.TimeRange, func(*model.AnalyticsEvent) error) error {
	return func(_ context.Context, _ model.StoreHandle, siteID string, tr model.TimeRange, fn func(*model.AnalyticsEvent) error) error {
		for i := range events {
			e := events[i]
			if e.SiteID != siteID || !tr.Contains(e.CreatedAt) {
				continue
			}
			if err := fn(&e); err != nil {
				return err
			}
		}
		return nil
	}
}

func newTestAggregationService(t *testing.T, events []model.AnalyticsEvent) (*AggregationService, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	directory := mocks.NewMockDirectoryServiceInterface(ctrl)
	directory.EXPECT().LookupByID(gomock.Any(), "site-1").Return(testSite(), nil).AnyTimes()

	eventStore := mocks.NewMockEventStore(ctrl)
	eventStore.EXPECT().Scan(gomock.Any(), gomock.Any(), "site-1", gomock.Any(), gomock.Any()).
		DoAndReturn(scanFrom(events)).AnyTimes()

	svc := NewAggregationService(directory, NewCredentialResolver(), eventStore, 0, time.UTC)
	svc.now = func() time.Time { return aggNow }
	return svc, ctrl
}

func TestAggregationService_Metrics(t *testing.T) {
	events := []model.AnalyticsEvent{
		pageview(aggNow.Add(-60*time.Minute), "s1", "https://blog.example.com/x", ""),
		pageview(aggNow.Add(-50*time.Minute), "s1", "https://blog.example.com/x", ""),
		pageview(aggNow.Add(-10*time.Minute), "s2", "https://blog.example.com/x", "https://www.google.com/"),
	}

	svc, ctrl := newTestAggregationService(t, events)
	defer ctrl.Finish()

	snap, err := svc.Metrics(context.Background(), "site-1", model.MetricsQuery{Period: window.Day})
	require.NoError(t, err)

	assert.Equal(t, "site-1", snap.SiteID)
	assert.Equal(t, window.Day, snap.Period)
	assert.Equal(t, window.GranularityHour, snap.Granularity)
	assert.Equal(t, int64(3), snap.Pageviews)
	assert.Equal(t, int64(2), snap.UniqueVisitors)
	assert.Equal(t, []model.RankedItem{{Name: "/x", Count: 3}}, snap.TopPages)
	assert.Equal(t, []model.RankedItem{{Name: "Direct / None", Count: 2}, {Name: "google.com", Count: 1}}, snap.TopSources)
	assert.Equal(t, []model.RankedItem{{Name: "Direct", Count: 2}, {Name: "Search", Count: 1}}, snap.TopChannels)
	assert.Empty(t, snap.TopCampaigns)
	assert.Equal(t, []model.RankedItem{{Name: "Chrome", Count: 3}}, snap.TopBrowsers)
	assert.Equal(t, []model.RankedItem{{Name: "Windows", Count: 3}}, snap.TopOperatingSystem)
	assert.Equal(t, []model.RankedItem{{Name: "Desktop", Count: 3}}, snap.TopDevices)

	// s1 viewed twice over ten minutes, s2 bounced
	assert.InDelta(t, 0.5, snap.BounceRate, 1e-9)
	assert.InDelta(t, 300.0, snap.AvgVisitDuration, 1e-9)
	assert.InDelta(t, 1.5, snap.ViewsPerVisit, 1e-9)

	require.Len(t, snap.Buckets, 1)
	assert.Equal(t, "2024-03-15 11:00", snap.Buckets[0].Key)
	assert.Equal(t, int64(3), snap.Buckets[0].Pageviews)
	assert.Equal(t, int64(2), snap.Buckets[0].UniqueVisitors)

	assert.Equal(t, int64(0), snap.LiveVisitors)
	assert.Equal(t, aggNow, snap.GeneratedAt)
}

func TestAggregationService_Metrics_Periods(t *testing.T) {
	events := []model.AnalyticsEvent{
		pageview(time.Date(2019, 6, 1, 8, 0, 0, 0, time.UTC), "old", "https://blog.example.com/", ""),
		pageview(time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC), "feb", "https://blog.example.com/", ""),
		pageview(time.Date(2024, 3, 14, 23, 59, 59, 999e6, time.UTC), "yday", "https://blog.example.com/", ""),
		pageview(aggNow.Add(-time.Hour), "today", "https://blog.example.com/", ""),
	}

	tests := []struct {
		period    string
		pageviews int64
	}{
		{window.All, 4},
		{window.Year, 3},
		{window.LastMonth, 1},
		{window.Yesterday, 1},
		{window.Month, 2},
		{window.Day, 1},
		{window.Realtime, 0},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			svc, ctrl := newTestAggregationService(t, events)
			defer ctrl.Finish()

			snap, err := svc.Metrics(context.Background(), "site-1", model.MetricsQuery{Period: tt.period})
			require.NoError(t, err)
			assert.Equal(t, tt.pageviews, snap.Pageviews)
		})
	}
}

func TestAggregationService_Metrics_CustomRange(t *testing.T) {
	events := []model.AnalyticsEvent{
		pageview(aggNow.Add(-3*time.Hour), "s1", "https://blog.example.com/a", ""),
		pageview(aggNow.Add(-2*time.Hour), "s2", "https://blog.example.com/b", ""),
	}

	svc, ctrl := newTestAggregationService(t, events)
	defer ctrl.Finish()

	start := aggNow.Add(-150 * time.Minute)
	end := aggNow
	snap, err := svc.Metrics(context.Background(), "site-1", model.MetricsQuery{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, window.Custom, snap.Period)
	assert.Equal(t, int64(1), snap.Pageviews)
	assert.Equal(t, []model.RankedItem{{Name: "/b", Count: 1}}, snap.TopPages)
}

func TestAggregationService_Metrics_InvalidPeriod(t *testing.T) {
	svc, ctrl := newTestAggregationService(t, nil)
	defer ctrl.Finish()

	_, err := svc.Metrics(context.Background(), "site-1", model.MetricsQuery{Period: "fortnight"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	start := aggNow
	_, err = svc.Metrics(context.Background(), "site-1", model.MetricsQuery{Start: &start})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestAggregationService_LiveVisitors(t *testing.T) {
	events := []model.AnalyticsEvent{
		pageview(aggNow.Add(-10*time.Minute), "s1", "https://blog.example.com/", ""),
		pageview(aggNow.Add(-4*time.Minute), "s2", "https://blog.example.com/", ""),
		pageview(aggNow.Add(-3*time.Minute), "s3", "https://blog.example.com/", ""),
		pageview(aggNow.Add(-1*time.Minute), "s3", "https://blog.example.com/a", ""),
	}

	svc, ctrl := newTestAggregationService(t, events)
	defer ctrl.Finish()

	// live visitors ignore the selected period
	snap, err := svc.Metrics(context.Background(), "site-1", model.MetricsQuery{Period: window.Yesterday})
	require.NoError(t, err)
	assert.Equal(t, int64(0), snap.Pageviews)
	assert.Equal(t, int64(2), snap.LiveVisitors)
}

func TestAggregationService_Aggregate_TiesAndFallbacks(t *testing.T) {
	events := []model.AnalyticsEvent{
		pageview(aggNow.Add(-50*time.Minute), "s1", "https://blog.example.com/b?utm_campaign=spring", "not a url"),
		pageview(aggNow.Add(-40*time.Minute), "s2", "https://blog.example.com/a", "https://news.ycombinator.com/item?id=1"),
		pageview(aggNow.Add(-30*time.Minute), "s3", "mailto:someone@example.com", "https://mail.proton.me/"),
		pageview(aggNow.Add(-20*time.Minute), "s4", "https://blog.example.com", "https://unknown.example.org/post"),
	}
	// stored classification missing: derived from the user agent
	events[3].Browser, events[3].OS, events[3].Device = "", "", ""
	events[3].UserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1"

	svc, ctrl := newTestAggregationService(t, events)
	defer ctrl.Finish()

	w, err := window.Resolve(window.Day, aggNow)
	require.NoError(t, err)

	snap, err := svc.Aggregate(context.Background(), "site-1", w)
	require.NoError(t, err)

	assert.Equal(t, []model.RankedItem{
		{Name: "/b", Count: 1},
		{Name: "/a", Count: 1},
		{Name: "mailto:someone@example.com", Count: 1},
		{Name: "/", Count: 1},
	}, snap.TopPages, "ties keep first-seen order")

	assert.Equal(t, []model.RankedItem{
		{Name: "not a url", Count: 1},
		{Name: "news.ycombinator.com", Count: 1},
		{Name: "mail.proton.me", Count: 1},
		{Name: "unknown.example.org", Count: 1},
	}, snap.TopSources)

	assert.Equal(t, []model.RankedItem{
		{Name: "Other", Count: 2},
		{Name: "Social", Count: 1},
		{Name: "Email", Count: 1},
	}, snap.TopChannels)

	assert.Equal(t, []model.RankedItem{{Name: "spring", Count: 1}}, snap.TopCampaigns)
	assert.Equal(t, []model.RankedItem{{Name: "Chrome", Count: 3}, {Name: "Safari", Count: 1}}, snap.TopBrowsers)
	assert.Equal(t, []model.RankedItem{{Name: "Desktop", Count: 3}, {Name: "Mobile", Count: 1}}, snap.TopDevices)

	assert.InDelta(t, 1.0, snap.BounceRate, 1e-9)
	assert.InDelta(t, 0.0, snap.AvgVisitDuration, 1e-9)
}

func TestAggregationService_Aggregate_TopNLimit(t *testing.T) {
	var events []model.AnalyticsEvent
	for i := 0; i < 15; i++ {
		page := fmt.Sprintf("https://blog.example.com/p%d", i)
		events = append(events, pageview(aggNow.Add(-time.Duration(60-i)*time.Minute), fmt.Sprintf("s%d", i), page, ""))
	}
	events = append(events, pageview(aggNow.Add(-5*time.Minute), "s0", "https://blog.example.com/p14", ""))

	svc, ctrl := newTestAggregationService(t, events)
	defer ctrl.Finish()

	snap, err := svc.Metrics(context.Background(), "site-1", model.MetricsQuery{Period: window.Day})
	require.NoError(t, err)
	require.Len(t, snap.TopPages, DefaultTopN)
	assert.Equal(t, model.RankedItem{Name: "/p14", Count: 2}, snap.TopPages[0])
	assert.Equal(t, model.RankedItem{Name: "/p0", Count: 1}, snap.TopPages[1])
}

func TestAggregationService_Aggregate_Errors(t *testing.T) {
	w, err := window.Resolve(window.Day, aggNow)
	require.NoError(t, err)

	t.Run("unknown site", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		directory := mocks.NewMockDirectoryServiceInterface(ctrl)
		directory.EXPECT().LookupByID(gomock.Any(), "missing").Return(nil, ErrNotFound)

		svc := NewAggregationService(directory, NewCredentialResolver(), mocks.NewMockEventStore(ctrl), 0, nil)
		_, err := svc.Aggregate(context.Background(), "missing", w)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("store not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		site := testSite()
		site.DBKey = ""
		directory := mocks.NewMockDirectoryServiceInterface(ctrl)
		directory.EXPECT().LookupByID(gomock.Any(), "site-1").Return(site, nil)

		svc := NewAggregationService(directory, NewCredentialResolver(), mocks.NewMockEventStore(ctrl), 0, nil)
		_, err := svc.Aggregate(context.Background(), "site-1", w)
		assert.ErrorIs(t, err, ErrTenantNotConfigured)
	})

	t.Run("store read failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		directory := mocks.NewMockDirectoryServiceInterface(ctrl)
		directory.EXPECT().LookupByID(gomock.Any(), "site-1").Return(testSite(), nil)
		eventStore := mocks.NewMockEventStore(ctrl)
		eventStore.EXPECT().Scan(gomock.Any(), gomock.Any(), "site-1", gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("%w: %w", store.ErrRead, errors.New("timeout"))).Times(2)

		svc := NewAggregationService(directory, NewCredentialResolver(), eventStore, 0, nil)
		_, err := svc.Aggregate(context.Background(), "site-1", w)
		assert.ErrorIs(t, err, store.ErrRead)
	})
}
