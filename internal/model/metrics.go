package model

import (
	"time"
)

// MetricsQuery selects the window for a metrics request: either a period
// token or an explicit start/end pair
type MetricsQuery struct {
	Period string     `json:"period,omitempty"`
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
}

// Key identifies the selection, used to detect stale responses
func (q MetricsQuery) Key() string {
	if q.Start != nil && q.End != nil {
		return q.Start.Format(time.RFC3339Nano) + "/" + q.End.Format(time.RFC3339Nano)
	}
	return q.Period
}

// RankedItem is one entry of a top-N list
type RankedItem struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Bucket holds the counts for one time slice of the window
type Bucket struct {
	Key            string    `json:"key"`
	Start          time.Time `json:"start"`
	Pageviews      int64     `json:"pageviews"`
	UniqueVisitors int64     `json:"unique_visitors"`
}

// MetricsSnapshot is the dashboard-ready aggregate for one site and window
type MetricsSnapshot struct {
	SiteID             string       `json:"site_id"`
	Period             string       `json:"period"`
	Start              time.Time    `json:"start"`
	End                time.Time    `json:"end"`
	Granularity        string       `json:"granularity"`
	Pageviews          int64        `json:"pageviews"`
	UniqueVisitors     int64        `json:"unique_visitors"`
	ViewsPerVisit      float64      `json:"views_per_visit"`
	BounceRate         float64      `json:"bounce_rate"`
	AvgVisitDuration   float64      `json:"avg_visit_duration_seconds"`
	Buckets            []Bucket     `json:"buckets"`
	TopPages           []RankedItem `json:"top_pages"`
	TopSources         []RankedItem `json:"top_sources"`
	TopChannels        []RankedItem `json:"top_channels"`
	TopCampaigns       []RankedItem `json:"top_campaigns"`
	TopBrowsers        []RankedItem `json:"top_browsers"`
	TopOperatingSystem []RankedItem `json:"top_operating_systems"`
	TopDevices         []RankedItem `json:"top_devices"`
	LiveVisitors       int64        `json:"live_visitors"`
	GeneratedAt        time.Time    `json:"generated_at"`
}
