package repository

import (
	"context"
	"time"

	"oneshot/internal/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// MySQLRepositoryInterface defines the interface for the site directory table
type MySQLRepositoryInterface interface {
	GetDB() *gorm.DB
	SaveSite(ctx context.Context, site *model.Site) error
	GetSiteByID(ctx context.Context, id string) (*model.Site, error)
	UpdateStoreCredentials(ctx context.Context, id, dbURL, dbKey string) error
	DeleteSite(ctx context.Context, id string) (int64, error)
	ListSiteIDs(ctx context.Context) ([]string, error)
	Close() error
}

// RedisRepositoryInterface defines the interface for the site cache and ingest counters
type RedisRepositoryInterface interface {
	GetClient() *redis.Client
	SaveSite(ctx context.Context, site *model.Site, ttl time.Duration) error
	GetSite(ctx context.Context, id string) (*model.Site, error)
	DeleteSite(ctx context.Context, id string) error
	IncrementIngested(ctx context.Context, siteID string, day time.Time) (int64, error)
	GetIngested(ctx context.Context, siteID string, day time.Time) (int64, error)
	Close() error
}

var (
	_ MySQLRepositoryInterface = (*MySQLRepository)(nil)
	_ RedisRepositoryInterface = (*RedisRepository)(nil)
)
