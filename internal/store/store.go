// Package store is the uniform read/write interface over a site's own event
// store. It is the only package aware of the physical transport: SQL
// databases through gorm, ClickHouse over the native protocol, and Redis
// sorted sets.
package store

import (
	"context"
	"errors"

	"oneshot/internal/config"
	"oneshot/internal/model"
)

// Drivers
const (
	DriverPostgres   = "postgres"
	DriverMySQL      = "mysql"
	DriverClickHouse = "clickhouse"
	DriverRedis      = "redis"
)

var (
	// ErrRead is returned when events cannot be read from a store
	ErrRead = errors.New("store read failed")
	// ErrWrite is returned when an event cannot be persisted
	ErrWrite = errors.New("store write failed")
	// ErrSchemaMissing is returned by Verify when the events table is absent
	ErrSchemaMissing = errors.New("analytics_events schema missing")
	// ErrUnsupportedDriver is returned for handles with an unknown driver
	ErrUnsupportedDriver = errors.New("unsupported store driver")
)

// EventStore is the adapter every other component depends on
type EventStore interface {
	// Write persists one event, assigning its id and created timestamp if absent
	Write(ctx context.Context, h model.StoreHandle, event *model.AnalyticsEvent) error
	// Query returns the site's events in [tr.Start, tr.End) by ascending created_at
	Query(ctx context.Context, h model.StoreHandle, siteID string, tr model.TimeRange) ([]model.AnalyticsEvent, error)
	// Scan streams the same events as Query to fn, one at a time
	Scan(ctx context.Context, h model.StoreHandle, siteID string, tr model.TimeRange, fn func(*model.AnalyticsEvent) error) error
	// DeleteSite removes every event of the site
	DeleteSite(ctx context.Context, h model.StoreHandle, siteID string) (int64, error)
	// Migrate creates the events schema
	Migrate(ctx context.Context, h model.StoreHandle) error
	// Verify checks connectivity and the presence of the events schema
	Verify(ctx context.Context, h model.StoreHandle) error
}

// Backend is one open connection to a physical store
type Backend interface {
	Insert(ctx context.Context, event *model.AnalyticsEvent) error
	Scan(ctx context.Context, siteID string, tr model.TimeRange, fn func(*model.AnalyticsEvent) error) error
	DeleteSite(ctx context.Context, siteID string) (int64, error)
	Migrate(ctx context.Context) error
	Verify(ctx context.Context) error
	Close() error
}

// Opener connects to the store described by a handle
type Opener func(ctx context.Context, h model.StoreHandle, cfg *config.StoreConfig) (Backend, error)
