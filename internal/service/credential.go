package service

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"oneshot/internal/model"
	"oneshot/internal/store"
)

const (
	supabaseHostSuffix = ".supabase.co"
	// Postgres is served from db.<ref>.supabase.co; <ref>.supabase.co is the HTTP API
	supabaseDBPrefix = "db."
)

var (
	// a bare Supabase project ref is 20 lower-case alphanumerics
	projectRefPattern = regexp.MustCompile(`^[a-z0-9]{20}$`)
	hostLabelPattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

	schemeDrivers = map[string]string{
		"postgres":   store.DriverPostgres,
		"postgresql": store.DriverPostgres,
		"mysql":      store.DriverMySQL,
		"clickhouse": store.DriverClickHouse,
		"redis":      store.DriverRedis,
		"rediss":     store.DriverRedis,
	}

	defaultPorts = map[string]string{
		store.DriverPostgres:   "5432",
		store.DriverMySQL:      "3306",
		store.DriverClickHouse: "9000",
		store.DriverRedis:      "6379",
	}
)

// CredentialResolver turns a directory row into a store handle. It performs
// no network I/O.
type CredentialResolver struct{}

// NewCredentialResolver creates a new CredentialResolver
func NewCredentialResolver() *CredentialResolver {
	return &CredentialResolver{}
}

// Resolve returns the handle for a site's store or ErrTenantNotConfigured
func (r *CredentialResolver) Resolve(site *model.Site) (*model.StoreHandle, error) {
	if site == nil || !site.Queryable() {
		return nil, ErrTenantNotConfigured
	}

	driver, canonical, err := NormalizeStoreURL(site.DBURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTenantNotConfigured, err)
	}

	return &model.StoreHandle{
		SiteID: site.ID,
		Driver: driver,
		URL:    canonical,
		Secret: site.DBKey,
	}, nil
}

// NormalizeStoreURL returns the driver and canonical form of a store URL.
// Applying it to its own output returns the same URL.
//
// Accepted inputs are full URLs with a postgres(ql), mysql, clickhouse or
// redis(s) scheme, a bare Supabase project ref or host, an https Supabase
// project URL, and a bare host[:port] which defaults to postgres.
func NormalizeStoreURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("%w: empty", ErrInvalidStoreURL)
	}

	if !strings.Contains(raw, "://") {
		lower := strings.ToLower(raw)
		if projectRefPattern.MatchString(lower) {
			return supabaseURL(lower)
		}
		raw = "postgres://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidStoreURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", "", fmt.Errorf("%w: missing host", ErrInvalidStoreURL)
	}

	if scheme == "https" || scheme == "http" {
		if ref, ok := supabaseRef(host); ok {
			return supabaseURL(ref)
		}
		return "", "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidStoreURL, scheme)
	}

	driver, ok := schemeDrivers[scheme]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidStoreURL, scheme)
	}
	if scheme == "postgresql" {
		scheme = "postgres"
	}

	port := u.Port()
	if port == "" {
		port = defaultPorts[driver]
	}

	path := strings.TrimRight(u.Path, "/")
	if driver == store.DriverPostgres {
		if ref, ok := supabaseRef(host); ok {
			host = supabaseDBHost(ref)
			if path == "" {
				path = "/postgres"
			}
		}
	}

	canonical := &url.URL{
		Scheme:   scheme,
		Host:     net.JoinHostPort(host, port),
		Path:     path,
		RawQuery: u.Query().Encode(),
	}
	if u.User != nil && u.User.Username() != "" {
		canonical.User = url.User(u.User.Username())
	}

	return driver, canonical.String(), nil
}

// supabaseRef extracts the project ref from <ref>.supabase.co or
// db.<ref>.supabase.co
func supabaseRef(host string) (string, bool) {
	if !strings.HasSuffix(host, supabaseHostSuffix) {
		return "", false
	}
	ref := strings.TrimSuffix(host, supabaseHostSuffix)
	ref = strings.TrimPrefix(ref, supabaseDBPrefix)
	if !hostLabelPattern.MatchString(ref) {
		return "", false
	}
	return ref, true
}

func supabaseDBHost(ref string) string {
	return supabaseDBPrefix + ref + supabaseHostSuffix
}

func supabaseURL(ref string) (string, string, error) {
	return store.DriverPostgres, "postgres://" + supabaseDBHost(ref) + ":5432/postgres", nil
}
