package repository

import (
	"context"
	"time"

	"oneshot/internal/config"
	"oneshot/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLRepository is the tenant directory backed by the sites table
type MySQLRepository struct {
	db *gorm.DB
}

// NewMySQLRepository creates a new MySQL repository
func NewMySQLRepository(cfg *config.MySQLConfig) *MySQLRepository {
	// Configure GORM logger
	var gormLogger logger.Interface
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gormLogger = logger.Default.LogMode(logger.Silent)
	} else {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MySQL")
	}

	if err := db.AutoMigrate(&model.Site{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	log.Info().Msg("MySQL connected successfully")

	return &MySQLRepository{db: db}
}

// GetDB returns the GORM DB instance
func (r *MySQLRepository) GetDB() *gorm.DB {
	return r.db
}

// SaveSite inserts a new site
func (r *MySQLRepository) SaveSite(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

// GetSiteByID retrieves a site by id
func (r *MySQLRepository) GetSiteByID(ctx context.Context, id string) (*model.Site, error) {
	var site model.Site
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&site).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

// UpdateStoreCredentials attaches store credentials and marks the site configured.
// Returns gorm.ErrRecordNotFound when the site does not exist.
func (r *MySQLRepository) UpdateStoreCredentials(ctx context.Context, id, dbURL, dbKey string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Site{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"db_url":        dbURL,
			"db_key":        dbKey,
			"is_configured": true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the values are unchanged
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Site{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteSite removes a site row
func (r *MySQLRepository) DeleteSite(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Site{})
	return result.RowsAffected, result.Error
}

// ListSiteIDs returns every site id, used to warm the Bloom Filter
func (r *MySQLRepository) ListSiteIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Site{}).Pluck("id", &ids).Error
	return ids, err
}

// Close closes the database connection
func (r *MySQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
