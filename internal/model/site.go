package model

import (
	"time"
)

// Site represents an onboarded website (tenant)
type Site struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	URL          string    `json:"url" gorm:"type:varchar(2048);not null"`
	APIKey       string    `json:"-" gorm:"column:api_key;type:varchar(64);uniqueIndex;not null"`
	DBURL        string    `json:"-" gorm:"column:db_url;type:varchar(2048)"`
	DBKey        string    `json:"-" gorm:"column:db_key;type:varchar(2048)"`
	IsConfigured bool      `json:"is_configured" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for Site
func (Site) TableName() string {
	return "sites"
}

// Queryable reports whether the site has a complete store configuration
func (s *Site) Queryable() bool {
	return s.IsConfigured && s.DBURL != "" && s.DBKey != ""
}

// CreateSiteRequest represents the onboarding request for a site
type CreateSiteRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required,url"`
}

// CreateSiteResponse is returned once, carrying the API key for the tracking snippet
type CreateSiteResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	APIKey string `json:"api_key"`
}

// StoreCredentialsRequest carries a store URL and its privileged secret
type StoreCredentialsRequest struct {
	StoreURL    string `json:"store_url" binding:"required"`
	StoreSecret string `json:"store_secret" binding:"required"`
}

// StoreHandle is a validated, normalized connection descriptor for one site's store
type StoreHandle struct {
	SiteID string
	Driver string
	URL    string
	Secret string
}

// String omits the secret
func (h StoreHandle) String() string {
	return h.Driver + "|" + h.URL
}

// SiteInfo is the public view of a site with today's accepted event count
type SiteInfo struct {
	Site
	EventsToday int64 `json:"events_today"`
}

// DeleteSiteResponse reports how the event purge of a deleted site was handled
type DeleteSiteResponse struct {
	ID            string `json:"id"`
	PurgeQueued   bool   `json:"purge_queued"`
	EventsDeleted int64  `json:"events_deleted"`
}
