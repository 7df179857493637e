package store

import (
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oneshot/internal/model"
)

func TestClickHouseOptions(t *testing.T) {
	cfg := testStoreConfig()

	t.Run("defaults database and user", func(t *testing.T) {
		h := model.StoreHandle{Driver: DriverClickHouse, URL: "clickhouse://ch.example.com:9000", Secret: "secret"}
		opts, err := clickhouseOptions(h, cfg)
		require.NoError(t, err)

		assert.Equal(t, []string{"ch.example.com:9000"}, opts.Addr)
		assert.Equal(t, "default", opts.Auth.Database)
		assert.Equal(t, "default", opts.Auth.Username)
		assert.Equal(t, "secret", opts.Auth.Password)
		assert.Equal(t, clickhouse.CompressionLZ4, opts.Compression.Method)
		assert.Equal(t, time.Second, opts.DialTimeout)
		assert.Nil(t, opts.TLS)
	})

	t.Run("explicit database and tls", func(t *testing.T) {
		h := model.StoreHandle{Driver: DriverClickHouse, URL: "clickhouse://writer@ch.example.com:9440/analytics?secure=true", Secret: "secret"}
		opts, err := clickhouseOptions(h, cfg)
		require.NoError(t, err)

		assert.Equal(t, "analytics", opts.Auth.Database)
		assert.Equal(t, "writer", opts.Auth.Username)
		require.NotNil(t, opts.TLS)
		assert.Equal(t, "ch.example.com", opts.TLS.ServerName)
	})
}

func TestClickHouseSchema(t *testing.T) {
	assert.Contains(t, clickhouseSchema, "ORDER BY (site_id, created_at)")
	assert.Contains(t, clickhouseSchema, "idx_session_id")
}
