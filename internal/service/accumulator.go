package service

import (
	"net/url"
	"sort"
	"time"

	"oneshot/internal/classify"
	"oneshot/internal/model"
	"oneshot/internal/window"
)

// rankCounter counts names and remembers the order each was first seen
type rankCounter struct {
	index map[string]int
	items []model.RankedItem
}

func newRankCounter() *rankCounter {
	return &rankCounter{index: make(map[string]int)}
}

func (c *rankCounter) add(name string) {
	if i, ok := c.index[name]; ok {
		c.items[i].Count++
		return
	}
	c.index[name] = len(c.items)
	c.items = append(c.items, model.RankedItem{Name: name, Count: 1})
}

// top returns the n highest counts; equal counts keep first-seen order
func (c *rankCounter) top(n int) []model.RankedItem {
	out := make([]model.RankedItem, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type bucketAcc struct {
	start     time.Time
	pageviews int64
	sessions  map[string]struct{}
}

type sessionAcc struct {
	first time.Time
	last  time.Time
	views int64
}

// accumulator reduces an event stream into a snapshot in one pass
type accumulator struct {
	granularity string
	loc         *time.Location
	topN        int

	pageviews int64
	buckets   map[string]*bucketAcc
	sessions  map[string]*sessionAcc

	pages     *rankCounter
	sources   *rankCounter
	channels  *rankCounter
	campaigns *rankCounter
	browsers  *rankCounter
	systems   *rankCounter
	devices   *rankCounter
}

func newAccumulator(granularity string, loc *time.Location, topN int) *accumulator {
	return &accumulator{
		granularity: granularity,
		loc:         loc,
		topN:        topN,
		buckets:     make(map[string]*bucketAcc),
		sessions:    make(map[string]*sessionAcc),
		pages:       newRankCounter(),
		sources:     newRankCounter(),
		channels:    newRankCounter(),
		campaigns:   newRankCounter(),
		browsers:    newRankCounter(),
		systems:     newRankCounter(),
		devices:     newRankCounter(),
	}
}

func (a *accumulator) add(e *model.AnalyticsEvent) error {
	a.pageviews++

	start := window.BucketStart(e.CreatedAt, a.granularity, a.loc)
	key := window.BucketKey(start, a.granularity)
	b, ok := a.buckets[key]
	if !ok {
		b = &bucketAcc{start: start, sessions: make(map[string]struct{})}
		a.buckets[key] = b
	}
	b.pageviews++
	b.sessions[e.SessionID] = struct{}{}

	s, ok := a.sessions[e.SessionID]
	if !ok {
		a.sessions[e.SessionID] = &sessionAcc{first: e.CreatedAt, last: e.CreatedAt, views: 1}
	} else {
		s.views++
		if e.CreatedAt.Before(s.first) {
			s.first = e.CreatedAt
		}
		if e.CreatedAt.After(s.last) {
			s.last = e.CreatedAt
		}
	}

	page, campaign := pageAndCampaign(e.PageURL)
	a.pages.add(page)
	if campaign != "" {
		a.campaigns.add(campaign)
	}

	host := referrerHost(e.ReferrerValue())
	a.sources.add(host)
	a.channels.add(string(classify.ClassifyChannel(host)))

	browser, system, device := e.Browser, e.OS, e.Device
	if browser == "" || system == "" || device == "" {
		ua := classify.ParseUserAgent(e.UserAgent)
		if browser == "" {
			browser = ua.Browser
		}
		if system == "" {
			system = ua.OS
		}
		if device == "" {
			device = ua.Device
		}
	}
	a.browsers.add(browser)
	a.systems.add(system)
	a.devices.add(device)

	return nil
}

func (a *accumulator) snapshot(siteID string, w window.TimeWindow) *model.MetricsSnapshot {
	snap := &model.MetricsSnapshot{
		SiteID:             siteID,
		Period:             w.Period,
		Start:              w.Start,
		End:                w.End,
		Granularity:        a.granularity,
		Pageviews:          a.pageviews,
		UniqueVisitors:     int64(len(a.sessions)),
		Buckets:            make([]model.Bucket, 0, len(a.buckets)),
		TopPages:           a.pages.top(a.topN),
		TopSources:         a.sources.top(a.topN),
		TopChannels:        a.channels.top(a.topN),
		TopCampaigns:       a.campaigns.top(a.topN),
		TopBrowsers:        a.browsers.top(a.topN),
		TopOperatingSystem: a.systems.top(a.topN),
		TopDevices:         a.devices.top(a.topN),
	}

	for key, b := range a.buckets {
		snap.Buckets = append(snap.Buckets, model.Bucket{
			Key:            key,
			Start:          b.start,
			Pageviews:      b.pageviews,
			UniqueVisitors: int64(len(b.sessions)),
		})
	}
	sort.Slice(snap.Buckets, func(i, j int) bool {
		return snap.Buckets[i].Start.Before(snap.Buckets[j].Start)
	})

	if len(a.sessions) > 0 {
		var bounced int64
		var total time.Duration
		for _, s := range a.sessions {
			if s.views == 1 {
				bounced++
			}
			total += s.last.Sub(s.first)
		}
		n := float64(len(a.sessions))
		snap.BounceRate = float64(bounced) / n
		snap.AvgVisitDuration = total.Seconds() / n
		snap.ViewsPerVisit = float64(a.pageviews) / n
	}

	return snap
}

// pageAndCampaign flattens a page URL to its path and extracts utm_campaign.
// Unparsable URLs are counted under their raw value.
func pageAndCampaign(raw string) (string, string) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, ""
	}
	path := u.Path
	if path == "" {
		if u.Host == "" && u.Opaque != "" {
			return raw, ""
		}
		path = "/"
	}
	return path, u.Query().Get("utm_campaign")
}

// referrerHost maps an empty referrer to the DirectNone sentinel and an
// unparsable one to its raw value
func referrerHost(raw string) string {
	if raw == "" {
		return classify.DirectNone
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return classify.NormalizeHost(u.Host)
}
