package repository

import (
	"context"
	"strconv"
	"time"

	"oneshot/internal/config"
	"oneshot/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Redis key prefixes
	SiteKeyPrefix          = "site:"
	SiteCacheTTL           = 10 * time.Minute
	IngestedKeyPrefix      = "site:ingested:"
	IngestedExpireDuration = 48 * time.Hour
)

// RedisRepository caches directory rows and keeps per-day ingest counters
type RedisRepository struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisRepository creates a new Redis repository
func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis")
	} else {
		log.Info().Msg("Redis connected successfully")
	}

	return &RedisRepository{
		client: rdb,
		cfg:    cfg,
	}
}

// GetClient returns the Redis client
func (r *RedisRepository) GetClient() *redis.Client {
	return r.client
}

// SiteTTL returns the configured cache lifetime for site rows
func (r *RedisRepository) SiteTTL() time.Duration {
	if r.cfg != nil && r.cfg.SiteTTL > 0 {
		return r.cfg.SiteTTL
	}
	return SiteCacheTTL
}

// SaveSite caches a directory row as a hash, credentials included
func (r *RedisRepository) SaveSite(ctx context.Context, site *model.Site, ttl time.Duration) error {
	key := r.siteKey(site.ID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]interface{}{
			"name":          site.Name,
			"url":           site.URL,
			"api_key":       site.APIKey,
			"db_url":        site.DBURL,
			"db_key":        site.DBKey,
			"is_configured": strconv.FormatBool(site.IsConfigured),
			"created_at":    site.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// GetSite returns a cached directory row or redis.Nil
func (r *RedisRepository) GetSite(ctx context.Context, id string) (*model.Site, error) {
	fields, err := r.client.HGetAll(ctx, r.siteKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, redis.Nil
	}

	configured, _ := strconv.ParseBool(fields["is_configured"])
	createdAt, _ := time.Parse(time.RFC3339Nano, fields["created_at"])

	return &model.Site{
		ID:           id,
		Name:         fields["name"],
		URL:          fields["url"],
		APIKey:       fields["api_key"],
		DBURL:        fields["db_url"],
		DBKey:        fields["db_key"],
		IsConfigured: configured,
		CreatedAt:    createdAt,
	}, nil
}

// DeleteSite invalidates a cached directory row
func (r *RedisRepository) DeleteSite(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.siteKey(id)).Err()
}

// IncrementIngested increments the accepted event count of a site for one day
func (r *RedisRepository) IncrementIngested(ctx context.Context, siteID string, day time.Time) (int64, error) {
	key := r.ingestedKey(siteID, day)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// Set expiration if this is the first increment
	if count == 1 {
		r.client.Expire(ctx, key, IngestedExpireDuration)
	}
	return count, nil
}

// GetIngested gets the accepted event count of a site for one day
func (r *RedisRepository) GetIngested(ctx context.Context, siteID string, day time.Time) (int64, error) {
	count, err := r.client.Get(ctx, r.ingestedKey(siteID, day)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Helper functions to build Redis keys

func (r *RedisRepository) siteKey(id string) string {
	return SiteKeyPrefix + id
}

func (r *RedisRepository) ingestedKey(siteID string, day time.Time) string {
	return IngestedKeyPrefix + siteID + ":" + day.Format("2006-01-02")
}
