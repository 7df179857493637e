package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"oneshot/internal/config"
	"oneshot/internal/model"
)

// sqlBackend stores events in an analytics_events table through gorm
type sqlBackend struct {
	db *gorm.DB
}

func openSQL(ctx context.Context, h model.StoreHandle, cfg *config.StoreConfig) (Backend, error) {
	dialector, err := sqlDialector(h, cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", h.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	if cfg.IdleTTL > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.IdleTTL)
	}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to %s store: %w", h.Driver, err)
	}

	return newSQLBackend(db), nil
}

func newSQLBackend(db *gorm.DB) *sqlBackend {
	return &sqlBackend{db: db}
}

func sqlDialector(h model.StoreHandle, cfg *config.StoreConfig) (gorm.Dialector, error) {
	switch h.Driver {
	case DriverPostgres:
		dsn, err := postgresDSN(h, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	case DriverMySQL:
		dsn, err := mysqlDSN(h, cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, h.Driver)
	}
}

// postgresDSN injects the secret as the password. TLS is required unless the
// store URL names its own sslmode.
func postgresDSN(h model.StoreHandle, cfg *config.StoreConfig) (string, error) {
	u, err := url.Parse(h.URL)
	if err != nil {
		return "", fmt.Errorf("invalid store url: %w", err)
	}

	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, h.Secret)

	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "require")
	}
	if cfg.DialTimeout > 0 && q.Get("connect_timeout") == "" {
		q.Set("connect_timeout", strconv.Itoa(int(cfg.DialTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func mysqlDSN(h model.StoreHandle, cfg *config.StoreConfig) (string, error) {
	u, err := url.Parse(h.URL)
	if err != nil {
		return "", fmt.Errorf("invalid store url: %w", err)
	}

	c := mysqldrv.NewConfig()
	c.User = "root"
	if u.User != nil && u.User.Username() != "" {
		c.User = u.User.Username()
	}
	c.Passwd = h.Secret
	c.Net = "tcp"
	c.Addr = u.Host
	c.DBName = strings.TrimPrefix(u.Path, "/")
	c.ParseTime = true
	c.Loc = time.UTC
	if cfg.DialTimeout > 0 {
		c.Timeout = cfg.DialTimeout
	}
	if tlsMode := u.Query().Get("tls"); tlsMode != "" {
		c.TLSConfig = tlsMode
	}

	return c.FormatDSN(), nil
}

func (b *sqlBackend) Insert(ctx context.Context, event *model.AnalyticsEvent) error {
	return b.db.WithContext(ctx).Create(event).Error
}

func (b *sqlBackend) Scan(ctx context.Context, siteID string, tr model.TimeRange, fn func(*model.AnalyticsEvent) error) error {
	rows, err := b.db.WithContext(ctx).
		Model(&model.AnalyticsEvent{}).
		Where("site_id = ? AND created_at >= ? AND created_at < ?", siteID, tr.Start.UTC(), tr.End.UTC()).
		Order("created_at ASC").
		Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var event model.AnalyticsEvent
		if err := b.db.ScanRows(rows, &event); err != nil {
			return err
		}
		if err := fn(&event); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (b *sqlBackend) DeleteSite(ctx context.Context, siteID string) (int64, error) {
	result := b.db.WithContext(ctx).Where("site_id = ?", siteID).Delete(&model.AnalyticsEvent{})
	return result.RowsAffected, result.Error
}

func (b *sqlBackend) Migrate(ctx context.Context) error {
	return b.db.WithContext(ctx).AutoMigrate(&model.AnalyticsEvent{})
}

func (b *sqlBackend) Verify(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if !b.db.WithContext(ctx).Migrator().HasTable(&model.AnalyticsEvent{}) {
		return ErrSchemaMissing
	}
	return nil
}

func (b *sqlBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
