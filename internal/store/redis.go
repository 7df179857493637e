package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"oneshot/internal/config"
	"oneshot/internal/model"
)

const (
	redisEventsKeyPrefix = "events:"
	redisSchemaKey       = "analytics_events:schema"
	redisSchemaVersion   = "v1"
	redisScanPageSize    = 1000
)

// redisBackend stores each site's events as JSON members of a sorted set
// scored by created_at in fractional milliseconds
type redisBackend struct {
	client *redis.Client
}

func openRedis(ctx context.Context, h model.StoreHandle, cfg *config.StoreConfig) (Backend, error) {
	opts, err := redisOptions(h, cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis store: %w", err)
	}

	return newRedisBackend(client), nil
}

func newRedisBackend(client *redis.Client) *redisBackend {
	return &redisBackend{client: client}
}

func redisOptions(h model.StoreHandle, cfg *config.StoreConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(h.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}
	opts.Password = h.Secret
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	opts.PoolSize = 5
	return opts, nil
}

func redisEventsKey(siteID string) string {
	return redisEventsKeyPrefix + siteID
}

func redisScore(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1000
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (b *redisBackend) Insert(ctx context.Context, event *model.AnalyticsEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.client.ZAdd(ctx, redisEventsKey(event.SiteID), redis.Z{
		Score:  redisScore(event.CreatedAt),
		Member: data,
	}).Err()
}

// Scan pages through the sorted set. Members with equal scores come back in
// lexicographic order, which is the only tie order this driver guarantees.
func (b *redisBackend) Scan(ctx context.Context, siteID string, tr model.TimeRange, fn func(*model.AnalyticsEvent) error) error {
	key := redisEventsKey(siteID)
	min := formatScore(redisScore(tr.Start))
	max := "(" + formatScore(redisScore(tr.End))

	var offset int64
	for {
		members, err := b.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{
			Min:    min,
			Max:    max,
			Offset: offset,
			Count:  redisScanPageSize,
		}).Result()
		if err != nil {
			return err
		}

		for _, m := range members {
			var event model.AnalyticsEvent
			if err := json.Unmarshal([]byte(m), &event); err != nil {
				return fmt.Errorf("failed to decode event: %w", err)
			}
			if err := fn(&event); err != nil {
				return err
			}
		}

		if len(members) < redisScanPageSize {
			return nil
		}
		offset += int64(len(members))
	}
}

func (b *redisBackend) DeleteSite(ctx context.Context, siteID string) (int64, error) {
	key := redisEventsKey(siteID)
	n, err := b.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return 0, err
	}
	return n, nil
}

func (b *redisBackend) Migrate(ctx context.Context) error {
	return b.client.Set(ctx, redisSchemaKey, redisSchemaVersion, 0).Err()
}

func (b *redisBackend) Verify(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return err
	}
	n, err := b.client.Exists(ctx, redisSchemaKey).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSchemaMissing
	}
	return nil
}

func (b *redisBackend) Close() error {
	return b.client.Close()
}
