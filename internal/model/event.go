package model

import (
	"time"
)

// EventTypePageview is the only event type accepted at ingestion
const EventTypePageview = "pageview"

// AnalyticsEvent represents a stored analytics event
type AnalyticsEvent struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index;not null"`
	SiteID    string    `json:"site_id" gorm:"type:varchar(36);index;not null"`
	EventType string    `json:"event_type" gorm:"type:varchar(32);not null"`
	PageURL   string    `json:"page_url" gorm:"type:text;not null"`
	Referrer  *string   `json:"referrer" gorm:"type:text"`
	UserAgent string    `json:"user_agent" gorm:"type:text"`
	Country   *string   `json:"country" gorm:"type:varchar(64)"`
	City      *string   `json:"city" gorm:"type:varchar(128)"`
	Browser   string    `json:"browser" gorm:"type:varchar(32)"`
	OS        string    `json:"os" gorm:"column:os;type:varchar(32)"`
	Device    string    `json:"device" gorm:"type:varchar(32)"`
	SessionID string    `json:"session_id" gorm:"type:varchar(128);index;not null"`
}

// TableName returns the table name for AnalyticsEvent
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

// ReferrerValue returns the referrer or an empty string
func (e *AnalyticsEvent) ReferrerValue() string {
	if e.Referrer == nil {
		return ""
	}
	return *e.Referrer
}

// IngestRequest is the JSON body posted by the tracking snippet
type IngestRequest struct {
	SiteID    string  `json:"site_id"`
	EventType string  `json:"event_type"`
	PageURL   string  `json:"page_url"`
	Referrer  *string `json:"referrer"`
	UserAgent string  `json:"user_agent"`
	SessionID string  `json:"session_id"`
}

// IngestAck acknowledges a persisted event
type IngestAck struct {
	Success bool   `json:"success"`
	EventID string `json:"event_id,omitempty"`
}

// TimeRange is a half-open [Start, End) interval
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}
