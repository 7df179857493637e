package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"oneshot/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// BloomService keeps a Bloom Filter of known site ids so ingestion can
// reject unknown tenants without touching the directory
type BloomService struct {
	client    RedisClient
	capacity  int64
	errorRate float64
	ready     atomic.Bool
}

// RedisClient defines the interface for Redis client operations
type RedisClient interface {
	Do(ctx context.Context, args ...interface{}) *redis.Cmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewBloomService creates a new Bloom Service
func NewBloomService(client RedisClient, cfg *config.BloomConfig) *BloomService {
	bs := &BloomService{
		client:    client,
		capacity:  cfg.Capacity,
		errorRate: cfg.ErrorRate,
	}

	// Initialize Bloom Filter if needed
	bs.initBloomFilter(context.Background())

	return bs
}

const bloomFilterKey = "site:bloom"

// initBloomFilter initializes the Bloom Filter
func (bs *BloomService) initBloomFilter(ctx context.Context) {
	// Check if Bloom Filter exists
	exists, err := bs.client.Exists(ctx, bloomFilterKey).Result()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to check Bloom Filter existence")
		return
	}

	if exists > 0 {
		log.Info().Msg("Bloom Filter already exists")
		return
	}

	// Create Bloom Filter
	cmd := bs.client.Do(ctx, "BF.RESERVE", bloomFilterKey, bs.errorRate, bs.capacity)
	if err := cmd.Err(); err != nil {
		// BF.RESERVE may not be available, use BF.ADD instead
		log.Warn().Err(err).Msg("BF.RESERVE not available, using dynamic Bloom Filter")
	} else {
		log.Info().Msgf("Bloom Filter created with capacity=%d, error_rate=%f", bs.capacity, bs.errorRate)
	}
}

// Add adds a site id to the Bloom Filter. A failed add leaves a known site
// out of the filter, so negative answers stop being trusted until the next
// successful Warm.
func (bs *BloomService) Add(ctx context.Context, siteID string) error {
	// Try BF.ADD first (RedisBloom module)
	cmd := bs.client.Do(ctx, "BF.ADD", bloomFilterKey, siteID)
	if err := cmd.Err(); err != nil {
		// Fallback to regular SET if Bloom Filter not available
		log.Debug().Err(err).Msg("BF.ADD not available, using SET as fallback")
		key := bs.fallbackKey(siteID)
		if err := bs.client.Set(ctx, key, 1, 0).Err(); err != nil {
			if bs.ready.Swap(false) {
				log.Warn().Err(err).Str("site_id", siteID).Msg("Bloom Filter add failed, pre-check disabled until rewarmed")
			}
			return err
		}
	}
	return nil
}

// Exists checks if a site id might exist in the Bloom Filter
func (bs *BloomService) Exists(ctx context.Context, siteID string) (bool, error) {
	// Try BF.EXISTS first
	cmd := bs.client.Do(ctx, "BF.EXISTS", bloomFilterKey, siteID)
	result, err := cmd.Int()
	if err == nil {
		return result == 1, nil
	}

	// Fallback to regular GET if Bloom Filter not available
	log.Debug().Err(err).Msg("BF.EXISTS not available, using GET as fallback")
	key := bs.fallbackKey(siteID)
	exists, err := bs.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Warm adds every known site id. Until Warm succeeds the filter is not
// trusted for negative answers.
func (bs *BloomService) Warm(ctx context.Context, siteIDs []string) error {
	for _, id := range siteIDs {
		if err := bs.Add(ctx, id); err != nil {
			return fmt.Errorf("failed to warm Bloom Filter: %w", err)
		}
	}
	bs.ready.Store(true)
	log.Info().Int("sites", len(siteIDs)).Msg("Bloom Filter warmed")
	return nil
}

// Ready reports whether negative answers can be trusted
func (bs *BloomService) Ready() bool {
	return bs.ready.Load()
}

// Fallback key when Bloom Filter is not available
func (bs *BloomService) fallbackKey(siteID string) string {
	return fmt.Sprintf("site:bloom:fb:%s", siteID)
}

// IsAvailable checks if the RedisBloom module is available
func (bs *BloomService) IsAvailable(ctx context.Context) bool {
	cmd := bs.client.Do(ctx, "BF.INFO", bloomFilterKey)
	return cmd.Err() == nil
}
