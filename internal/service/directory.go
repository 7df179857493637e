package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"oneshot/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DirectoryService resolves site ids to directory rows through the Redis
// cache, falling back to MySQL. Cache failures never fail a lookup.
type DirectoryService struct {
	mysqlRepo MySQLRepositoryInterface
	redisRepo RedisRepositoryInterface
	bloomSvc  BloomServiceInterface
	cacheTTL  time.Duration
}

// NewDirectoryService creates a new Directory Service. bloomSvc may be nil.
func NewDirectoryService(
	mysqlRepo MySQLRepositoryInterface,
	redisRepo RedisRepositoryInterface,
	bloomSvc BloomServiceInterface,
	cacheTTL time.Duration,
) *DirectoryService {
	return &DirectoryService{
		mysqlRepo: mysqlRepo,
		redisRepo: redisRepo,
		bloomSvc:  bloomSvc,
		cacheTTL:  cacheTTL,
	}
}

// LookupByAPIKey returns the site only if both id and key match; every
// mismatch returns ErrNotFound
func (d *DirectoryService) LookupByAPIKey(ctx context.Context, siteID, apiKey string) (*model.Site, error) {
	if siteID == "" || apiKey == "" {
		return nil, ErrNotFound
	}

	// Bloom pre-check: a definite miss skips cache and database
	if d.bloomSvc != nil && d.bloomSvc.Ready() {
		exists, err := d.bloomSvc.Exists(ctx, siteID)
		if err != nil {
			log.Warn().Err(err).Str("site_id", siteID).Msg("Bloom Filter check failed")
		} else if !exists {
			return nil, ErrNotFound
		}
	}

	site, err := d.LookupByID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(site.APIKey), []byte(apiKey)) != 1 {
		return nil, ErrNotFound
	}
	return site, nil
}

// LookupByID returns the directory row for a site
func (d *DirectoryService) LookupByID(ctx context.Context, siteID string) (*model.Site, error) {
	if siteID == "" {
		return nil, ErrNotFound
	}

	// Check cache first
	site, err := d.redisRepo.GetSite(ctx, siteID)
	if err == nil {
		return site, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("site_id", siteID).Msg("Site cache read failed")
	}

	site, err = d.mysqlRepo.GetSiteByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load site: %w", err)
	}

	if err := d.redisRepo.SaveSite(ctx, site, d.cacheTTL); err != nil {
		log.Warn().Err(err).Str("site_id", siteID).Msg("Failed to cache site")
	}

	return site, nil
}

// Invalidate drops the cached row of a site
func (d *DirectoryService) Invalidate(ctx context.Context, siteID string) {
	if err := d.redisRepo.DeleteSite(ctx, siteID); err != nil {
		log.Warn().Err(err).Str("site_id", siteID).Msg("Failed to invalidate site cache")
	}
}
