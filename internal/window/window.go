// Package window resolves named reporting periods into concrete time windows.
//
// Resolution is a pure function of the supplied instant; day and month
// boundaries follow the calendar of now.Location().
package window

import (
	"errors"
	"fmt"
	"time"

	"oneshot/internal/model"
)

// Period tokens
const (
	Realtime  = "realtime"
	Day       = "day"
	Yesterday = "yesterday"
	Week      = "7d"
	Days30    = "30d"
	Month     = "month"
	LastMonth = "lastMonth"
	Year      = "12mo"
	All       = "all"
	Custom    = "custom"
	Live      = "live"
)

// LiveLookback is the fixed lookback used for the live visitor count
const LiveLookback = 5 * time.Minute

// ErrInvalidPeriod is returned for unknown period tokens and malformed custom ranges
var ErrInvalidPeriod = errors.New("invalid period")

// Granularity of the buckets a window is split into
const (
	GranularityMinute = "minute"
	GranularityHour   = "hour"
	GranularityDay    = "day"
)

// TimeWindow is a resolved [Start, End) interval with the token it came from.
// For windows ending on a final millisecond (yesterday, lastMonth) End is that
// millisecond and is included in the interval.
type TimeWindow struct {
	Period    string    `json:"period"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	inclusive bool
}

// Tokens lists the named periods in display order
func Tokens() []string {
	return []string{Realtime, Day, Yesterday, Week, Days30, Month, LastMonth, Year, All}
}

// Resolve maps a period token to a concrete window relative to now
func Resolve(period string, now time.Time) (TimeWindow, error) {
	today := midnight(now)

	switch period {
	case Realtime:
		return TimeWindow{Period: period, Start: now.Add(-30 * time.Minute), End: now}, nil
	case Day:
		return TimeWindow{Period: period, Start: today, End: now}, nil
	case Yesterday:
		start := today.AddDate(0, 0, -1)
		return TimeWindow{Period: period, Start: start, End: today.Add(-time.Millisecond), inclusive: true}, nil
	case Week:
		return TimeWindow{Period: period, Start: now.AddDate(0, 0, -7), End: now}, nil
	case Days30:
		return TimeWindow{Period: period, Start: now.AddDate(0, 0, -30), End: now}, nil
	case Month:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return TimeWindow{Period: period, Start: first, End: now}, nil
	case LastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start := first.AddDate(0, -1, 0)
		return TimeWindow{Period: period, Start: start, End: first.Add(-time.Millisecond), inclusive: true}, nil
	case Year:
		return TimeWindow{Period: period, Start: now.AddDate(-1, 0, 0), End: now}, nil
	case All:
		return TimeWindow{Period: period, Start: time.Unix(0, 0).In(now.Location()), End: now}, nil
	default:
		return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

// NewCustom builds an explicit [start, end) window
func NewCustom(start, end time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, fmt.Errorf("%w: start must be before end", ErrInvalidPeriod)
	}
	return TimeWindow{Period: Custom, Start: start, End: end}, nil
}

// ForQuery resolves either the explicit range or the period token of q
func ForQuery(q model.MetricsQuery, now time.Time) (TimeWindow, error) {
	if q.Start != nil || q.End != nil {
		if q.Start == nil || q.End == nil {
			return TimeWindow{}, fmt.Errorf("%w: start and end must be given together", ErrInvalidPeriod)
		}
		return NewCustom(q.Start.In(now.Location()), q.End.In(now.Location()))
	}
	return Resolve(q.Period, now)
}

// LiveWindow is the trailing window used for the live visitor count,
// independent of any selected period
func LiveWindow(now time.Time) TimeWindow {
	return TimeWindow{Period: Live, Start: now.Add(-LiveLookback), End: now}
}

// Range returns the half-open interval to query the store with
func (w TimeWindow) Range() model.TimeRange {
	end := w.End
	if w.inclusive {
		end = end.Add(time.Millisecond)
	}
	return model.TimeRange{Start: w.Start, End: end}
}

// Duration is the length of the queried interval
func (w TimeWindow) Duration() time.Duration {
	r := w.Range()
	return r.End.Sub(r.Start)
}

// Granularity picks the bucket size: calendar days for windows of at least a
// day, minutes for realtime, hours otherwise
func (w TimeWindow) Granularity() string {
	switch {
	case w.Period == Realtime || w.Period == Live:
		return GranularityMinute
	case w.Duration() >= 24*time.Hour:
		return GranularityDay
	default:
		return GranularityHour
	}
}

// BucketStart truncates t to the start of its bucket in loc
func BucketStart(t time.Time, granularity string, loc *time.Location) time.Time {
	t = t.In(loc)
	switch granularity {
	case GranularityMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	case GranularityHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

// BucketKey formats a bucket start for display
func BucketKey(start time.Time, granularity string) string {
	switch granularity {
	case GranularityMinute:
		return start.Format("2006-01-02 15:04")
	case GranularityHour:
		return start.Format("2006-01-02 15:00")
	default:
		return start.Format("2006-01-02")
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
