package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"oneshot/internal/config"
	"oneshot/internal/model"
)

const clickhouseSchema = `CREATE TABLE IF NOT EXISTS analytics_events (
	id String,
	created_at DateTime64(3, 'UTC'),
	site_id String,
	event_type LowCardinality(String),
	page_url String,
	referrer Nullable(String),
	user_agent String,
	country Nullable(String),
	city Nullable(String),
	browser LowCardinality(String),
	os LowCardinality(String),
	device LowCardinality(String),
	session_id String,
	INDEX idx_session_id session_id TYPE bloom_filter GRANULARITY 4
) ENGINE = MergeTree
ORDER BY (site_id, created_at)`

const clickhouseColumns = "id, created_at, site_id, event_type, page_url, referrer, user_agent, country, city, browser, os, device, session_id"

// clickhouseBackend stores events in a MergeTree table over the native protocol
type clickhouseBackend struct {
	conn driver.Conn
}

func openClickHouse(ctx context.Context, h model.StoreHandle, cfg *config.StoreConfig) (Backend, error) {
	options, err := clickhouseOptions(h, cfg)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &clickhouseBackend{conn: conn}, nil
}

func clickhouseOptions(h model.StoreHandle, cfg *config.StoreConfig) (*clickhouse.Options, error) {
	u, err := url.Parse(h.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}

	database := strings.TrimPrefix(u.Path, "/")
	if database == "" {
		database = "default"
	}
	username := "default"
	if u.User != nil && u.User.Username() != "" {
		username = u.User.Username()
	}

	options := &clickhouse.Options{
		Addr: []string{u.Host},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: h.Secret,
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{{Name: "oneshot", Version: "1.0.0"}},
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: cfg.DialTimeout,
	}
	if u.Query().Get("secure") == "true" {
		options.TLS = &tls.Config{ServerName: u.Hostname()}
	}

	return options, nil
}

func (b *clickhouseBackend) Insert(ctx context.Context, e *model.AnalyticsEvent) error {
	return b.conn.Exec(ctx,
		"INSERT INTO analytics_events ("+clickhouseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.CreatedAt.UTC(), e.SiteID, e.EventType, e.PageURL, e.Referrer, e.UserAgent,
		e.Country, e.City, e.Browser, e.OS, e.Device, e.SessionID,
	)
}

func (b *clickhouseBackend) Scan(ctx context.Context, siteID string, tr model.TimeRange, fn func(*model.AnalyticsEvent) error) error {
	rows, err := b.conn.Query(ctx,
		"SELECT "+clickhouseColumns+" FROM analytics_events WHERE site_id = ? AND created_at >= ? AND created_at < ? ORDER BY created_at ASC",
		siteID, tr.Start.UTC(), tr.End.UTC(),
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.AnalyticsEvent
		if err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.SiteID, &e.EventType, &e.PageURL, &e.Referrer, &e.UserAgent,
			&e.Country, &e.City, &e.Browser, &e.OS, &e.Device, &e.SessionID,
		); err != nil {
			return err
		}
		if err := fn(&e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (b *clickhouseBackend) DeleteSite(ctx context.Context, siteID string) (int64, error) {
	var count uint64
	if err := b.conn.QueryRow(ctx, "SELECT count() FROM analytics_events WHERE site_id = ?", siteID).Scan(&count); err != nil {
		return 0, err
	}
	if err := b.conn.Exec(ctx, "ALTER TABLE analytics_events DELETE WHERE site_id = ?", siteID); err != nil {
		return 0, err
	}
	return int64(count), nil
}

func (b *clickhouseBackend) Migrate(ctx context.Context) error {
	return b.conn.Exec(ctx, clickhouseSchema)
}

func (b *clickhouseBackend) Verify(ctx context.Context) error {
	if err := b.conn.Ping(ctx); err != nil {
		return err
	}
	var exists uint8
	if err := b.conn.QueryRow(ctx, "EXISTS TABLE analytics_events").Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrSchemaMissing
	}
	return nil
}

func (b *clickhouseBackend) Close() error {
	return b.conn.Close()
}
