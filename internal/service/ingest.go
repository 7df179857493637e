package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oneshot/internal/classify"
	"oneshot/internal/model"
	"oneshot/internal/store"

	"github.com/rs/zerolog/log"
)

const maxSessionIDLength = 128

// IngestService is the write path for tracking-snippet events
type IngestService struct {
	directory DirectoryServiceInterface
	resolver  *CredentialResolver
	store     store.EventStore
	redisRepo RedisRepositoryInterface
	now       func() time.Time
}

// NewIngestService creates a new Ingest Service
func NewIngestService(
	directory DirectoryServiceInterface,
	resolver *CredentialResolver,
	eventStore store.EventStore,
	redisRepo RedisRepositoryInterface,
) *IngestService {
	return &IngestService{
		directory: directory,
		resolver:  resolver,
		store:     eventStore,
		redisRepo: redisRepo,
		now:       time.Now,
	}
}

// Ingest authenticates the bearer against the site, validates the event,
// derives browser/OS/device from the user agent and writes it to the site's
// store. Nothing is written unless every check passes.
func (s *IngestService) Ingest(ctx context.Context, bearer string, req *model.IngestRequest) (*model.IngestAck, error) {
	if bearer == "" {
		return nil, ErrMissingCredential
	}

	site, err := s.directory.LookupByAPIKey(ctx, req.SiteID, bearer)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnknownSite
		}
		return nil, err
	}

	handle, err := s.resolver.Resolve(site)
	if err != nil {
		return nil, err
	}

	if err := validateIngest(req); err != nil {
		return nil, err
	}

	ua := classify.ParseUserAgent(req.UserAgent)
	event := &model.AnalyticsEvent{
		CreatedAt: s.now().UTC(),
		SiteID:    site.ID,
		EventType: model.EventTypePageview,
		PageURL:   req.PageURL,
		UserAgent: req.UserAgent,
		Browser:   ua.Browser,
		OS:        ua.OS,
		Device:    ua.Device,
		SessionID: req.SessionID,
	}
	if req.Referrer != nil && *req.Referrer != "" {
		ref := *req.Referrer
		event.Referrer = &ref
	}

	if err := s.store.Write(ctx, *handle, event); err != nil {
		log.Error().Err(err).Str("site_id", site.ID).Str("store", handle.String()).Msg("Failed to write event")
		return nil, err
	}

	if _, err := s.redisRepo.IncrementIngested(ctx, site.ID, event.CreatedAt); err != nil {
		log.Warn().Err(err).Str("site_id", site.ID).Msg("Failed to increment ingest counter")
	}

	log.Debug().
		Str("site_id", site.ID).
		Str("event_id", event.ID).
		Str("browser", event.Browser).
		Msg("Event ingested")

	return &model.IngestAck{Success: true, EventID: event.ID}, nil
}

func validateIngest(req *model.IngestRequest) error {
	if req.EventType == "" {
		req.EventType = model.EventTypePageview
	}
	switch {
	case req.EventType != model.EventTypePageview:
		return fmt.Errorf("%w: unsupported event_type %q", ErrValidation, req.EventType)
	case req.PageURL == "":
		return fmt.Errorf("%w: page_url is required", ErrValidation)
	case req.SessionID == "":
		return fmt.Errorf("%w: session_id is required", ErrValidation)
	case len(req.SessionID) > maxSessionIDLength:
		return fmt.Errorf("%w: session_id too long", ErrValidation)
	case req.UserAgent == "":
		return fmt.Errorf("%w: user_agent is required", ErrValidation)
	}
	return nil
}
