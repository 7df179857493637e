package mq

import (
	"time"
)

// Message tags
const (
	TagSitePurge = "site_purge"
)

// PurgeMessage asks a consumer to delete every stored event of a removed site.
// The directory row is already gone when this is consumed, so the message
// carries the store credentials the row held.
type PurgeMessage struct {
	SiteID      string    `json:"site_id"`
	StoreURL    string    `json:"store_url"`
	StoreSecret string    `json:"store_secret"`
	RequestedAt time.Time `json:"requested_at"`
}
