package service

import (
	"context"
	"time"

	"oneshot/internal/model"
	"oneshot/internal/mq"
	"oneshot/internal/window"
)

// MySQLRepositoryInterface defines the interface for MySQL operations (for testing)
type MySQLRepositoryInterface interface {
	SaveSite(ctx context.Context, site *model.Site) error
	GetSiteByID(ctx context.Context, id string) (*model.Site, error)
	UpdateStoreCredentials(ctx context.Context, id, dbURL, dbKey string) error
	DeleteSite(ctx context.Context, id string) (int64, error)
	ListSiteIDs(ctx context.Context) ([]string, error)
}

// RedisRepositoryInterface defines the interface for Redis operations (for testing)
type RedisRepositoryInterface interface {
	SaveSite(ctx context.Context, site *model.Site, ttl time.Duration) error
	GetSite(ctx context.Context, id string) (*model.Site, error)
	DeleteSite(ctx context.Context, id string) error
	IncrementIngested(ctx context.Context, siteID string, day time.Time) (int64, error)
	GetIngested(ctx context.Context, siteID string, day time.Time) (int64, error)
}

// BloomServiceInterface defines the interface for Bloom Filter operations (for testing)
type BloomServiceInterface interface {
	Add(ctx context.Context, siteID string) error
	Exists(ctx context.Context, siteID string) (bool, error)
	Ready() bool
}

// PurgeProducerInterface publishes site purge requests (for testing)
type PurgeProducerInterface interface {
	SendPurge(ctx context.Context, msg *mq.PurgeMessage) error
}

// DirectoryServiceInterface defines the interface for tenant lookups
type DirectoryServiceInterface interface {
	LookupByAPIKey(ctx context.Context, siteID, apiKey string) (*model.Site, error)
	LookupByID(ctx context.Context, siteID string) (*model.Site, error)
	Invalidate(ctx context.Context, siteID string)
}

// IngestServiceInterface defines the interface for event ingestion
type IngestServiceInterface interface {
	Ingest(ctx context.Context, bearer string, req *model.IngestRequest) (*model.IngestAck, error)
}

// AggregationServiceInterface defines the interface for metrics computation
type AggregationServiceInterface interface {
	Metrics(ctx context.Context, siteID string, q model.MetricsQuery) (*model.MetricsSnapshot, error)
	Aggregate(ctx context.Context, siteID string, w window.TimeWindow) (*model.MetricsSnapshot, error)
}

// SiteServiceInterface defines the interface for site onboarding and lifecycle
type SiteServiceInterface interface {
	Create(ctx context.Context, req *model.CreateSiteRequest) (*model.CreateSiteResponse, error)
	Get(ctx context.Context, siteID string) (*model.SiteInfo, error)
	VerifyStore(ctx context.Context, req *model.StoreCredentialsRequest) error
	AttachStore(ctx context.Context, siteID string, req *model.StoreCredentialsRequest) error
	Delete(ctx context.Context, siteID string) (*model.DeleteSiteResponse, error)
	PurgeEvents(ctx context.Context, msg *mq.PurgeMessage) error
}
