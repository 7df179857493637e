package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oneshot/internal/model"
	"oneshot/internal/mq"
	"oneshot/internal/store"
	"oneshot/pkg/util"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SiteService handles onboarding, store provisioning and removal of sites
type SiteService struct {
	mysqlRepo MySQLRepositoryInterface
	redisRepo RedisRepositoryInterface
	bloomSvc  BloomServiceInterface
	directory DirectoryServiceInterface
	store     store.EventStore
	producer  PurgeProducerInterface
	now       func() time.Time
}

// NewSiteService creates a new Site Service. bloomSvc and producer may be nil;
// without a producer purges run inline.
func NewSiteService(
	mysqlRepo MySQLRepositoryInterface,
	redisRepo RedisRepositoryInterface,
	bloomSvc BloomServiceInterface,
	directory DirectoryServiceInterface,
	eventStore store.EventStore,
	producer PurgeProducerInterface,
) *SiteService {
	return &SiteService{
		mysqlRepo: mysqlRepo,
		redisRepo: redisRepo,
		bloomSvc:  bloomSvc,
		directory: directory,
		store:     eventStore,
		producer:  producer,
		now:       time.Now,
	}
}

// Create onboards a site and returns its API key. The key is only ever
// returned here.
func (s *SiteService) Create(ctx context.Context, req *model.CreateSiteRequest) (*model.CreateSiteResponse, error) {
	if req.Name == "" || req.URL == "" {
		return nil, fmt.Errorf("%w: name and url are required", ErrValidation)
	}

	site := &model.Site{
		ID:        util.GenerateUUID(),
		Name:      req.Name,
		URL:       req.URL,
		APIKey:    util.GenerateAPIKey(),
		CreatedAt: s.now().UTC(),
	}

	if err := s.mysqlRepo.SaveSite(ctx, site); err != nil {
		log.Error().Err(err).Str("site_id", site.ID).Msg("Failed to save site")
		return nil, fmt.Errorf("failed to save site: %w", err)
	}

	// A failed add turns the Bloom pre-check off rather than hiding the site
	if s.bloomSvc != nil {
		if err := s.bloomSvc.Add(ctx, site.ID); err != nil {
			log.Warn().Err(err).Str("site_id", site.ID).Msg("Failed to add site to Bloom Filter")
		}
	}

	log.Info().Str("site_id", site.ID).Str("url", site.URL).Msg("Site created")

	return &model.CreateSiteResponse{
		ID:     site.ID,
		Name:   site.Name,
		URL:    site.URL,
		APIKey: site.APIKey,
	}, nil
}

// Get returns the public view of a site with today's ingest count
func (s *SiteService) Get(ctx context.Context, siteID string) (*model.SiteInfo, error) {
	site, err := s.directory.LookupByID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	count, err := s.redisRepo.GetIngested(ctx, siteID, s.now().UTC())
	if err != nil {
		log.Warn().Err(err).Str("site_id", siteID).Msg("Failed to get ingest counter")
		count = 0
	}

	return &model.SiteInfo{Site: *site, EventsToday: count}, nil
}

// VerifyStore creates the events schema in a candidate store and checks it
// can be reached with the given secret
func (s *SiteService) VerifyStore(ctx context.Context, req *model.StoreCredentialsRequest) error {
	handle, err := candidateHandle("", req)
	if err != nil {
		return err
	}

	if err := s.store.Migrate(ctx, *handle); err != nil {
		log.Warn().Err(err).Str("store", handle.String()).Msg("Store migration failed")
		return err
	}
	if err := s.store.Verify(ctx, *handle); err != nil {
		log.Warn().Err(err).Str("store", handle.String()).Msg("Store verification failed")
		return err
	}

	log.Info().Str("store", handle.String()).Msg("Store verified")
	return nil
}

// AttachStore verifies a store and records its credentials on the site
func (s *SiteService) AttachStore(ctx context.Context, siteID string, req *model.StoreCredentialsRequest) error {
	handle, err := candidateHandle(siteID, req)
	if err != nil {
		return err
	}

	if err := s.store.Verify(ctx, *handle); err != nil {
		log.Warn().Err(err).Str("site_id", siteID).Str("store", handle.String()).Msg("Store verification failed")
		return err
	}

	if err := s.mysqlRepo.UpdateStoreCredentials(ctx, siteID, handle.URL, handle.Secret); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update site: %w", err)
	}
	s.directory.Invalidate(ctx, siteID)

	log.Info().Str("site_id", siteID).Str("store", handle.String()).Msg("Store attached")
	return nil
}

// Delete removes a site and cascades the deletion of its events, through
// RocketMQ when a producer is available and inline otherwise. The site row
// is removed only once the purge is queued or done, so a failed purge can be
// retried with another Delete.
func (s *SiteService) Delete(ctx context.Context, siteID string) (*model.DeleteSiteResponse, error) {
	site, err := s.directory.LookupByID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	resp := &model.DeleteSiteResponse{ID: siteID}
	if site.Queryable() {
		if err := s.cascade(ctx, site, resp); err != nil {
			return nil, err
		}
	}

	if _, err := s.mysqlRepo.DeleteSite(ctx, siteID); err != nil {
		return nil, fmt.Errorf("failed to delete site: %w", err)
	}
	s.directory.Invalidate(ctx, siteID)

	switch {
	case !site.Queryable():
		log.Info().Str("site_id", siteID).Msg("Site deleted without store")
	case resp.PurgeQueued:
		log.Info().Str("site_id", siteID).Msg("Site deleted, event purge queued")
	default:
		log.Info().Str("site_id", siteID).Int64("events", resp.EventsDeleted).Msg("Site deleted, events purged")
	}
	return resp, nil
}

// cascade queues the purge of a site's events, or runs it inline when no
// producer can take it
func (s *SiteService) cascade(ctx context.Context, site *model.Site, resp *model.DeleteSiteResponse) error {
	msg := &mq.PurgeMessage{
		SiteID:      site.ID,
		StoreURL:    site.DBURL,
		StoreSecret: site.DBKey,
		RequestedAt: s.now().UTC(),
	}

	if s.producer != nil {
		err := s.producer.SendPurge(ctx, msg)
		if err == nil {
			resp.PurgeQueued = true
			return nil
		}
		if !errors.Is(err, mq.ErrProducerDisabled) {
			log.Warn().Err(err).Str("site_id", site.ID).Msg("Failed to queue purge, purging inline")
		}
	}

	deleted, err := s.purge(ctx, msg)
	if err != nil {
		return err
	}
	resp.EventsDeleted = deleted
	return nil
}

// PurgeEvents deletes every event of a removed site; it is the RocketMQ
// purge handler
func (s *SiteService) PurgeEvents(ctx context.Context, msg *mq.PurgeMessage) error {
	deleted, err := s.purge(ctx, msg)
	if err != nil {
		return err
	}
	log.Info().Str("site_id", msg.SiteID).Int64("events", deleted).Msg("Events purged")
	return nil
}

func (s *SiteService) purge(ctx context.Context, msg *mq.PurgeMessage) (int64, error) {
	driver, canonical, err := NormalizeStoreURL(msg.StoreURL)
	if err != nil {
		return 0, err
	}
	handle := model.StoreHandle{SiteID: msg.SiteID, Driver: driver, URL: canonical, Secret: msg.StoreSecret}

	deleted, err := s.store.DeleteSite(ctx, handle, msg.SiteID)
	if err != nil {
		log.Error().Err(err).Str("site_id", msg.SiteID).Str("store", handle.String()).Msg("Failed to purge events")
		return 0, err
	}
	return deleted, nil
}

func candidateHandle(siteID string, req *model.StoreCredentialsRequest) (*model.StoreHandle, error) {
	if req.StoreSecret == "" {
		return nil, fmt.Errorf("%w: store_secret is required", ErrValidation)
	}
	driver, canonical, err := NormalizeStoreURL(req.StoreURL)
	if err != nil {
		return nil, err
	}
	return &model.StoreHandle{SiteID: siteID, Driver: driver, URL: canonical, Secret: req.StoreSecret}, nil
}
