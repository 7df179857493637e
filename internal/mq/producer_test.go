package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_SendPurge_NilProducer(t *testing.T) {
	t.Run("nil producer reports disabled", func(t *testing.T) {
		var p *Producer
		msg := &PurgeMessage{
			SiteID:      "site-1",
			StoreURL:    "postgres://db.abcd.supabase.co:5432/postgres",
			StoreSecret: "secret",
			RequestedAt: time.Now(),
		}

		err := p.SendPurge(context.Background(), msg)
		assert.ErrorIs(t, err, ErrProducerDisabled)
	})

	t.Run("nil producer behind the interface", func(t *testing.T) {
		var p *Producer
		var iface ProducerInterface = p
		assert.ErrorIs(t, iface.SendPurge(context.Background(), &PurgeMessage{}), ErrProducerDisabled)
	})
}

func TestProducer_Close(t *testing.T) {
	t.Run("nil producer close returns nil", func(t *testing.T) {
		var p *Producer
		err := p.Close()
		assert.NoError(t, err)
	})
}

func TestPurgeMessage_WireFormat(t *testing.T) {
	msg := &PurgeMessage{
		SiteID:      "site-1",
		StoreURL:    "redis://cache:6379/0",
		StoreSecret: "secret",
		RequestedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "site-1", fields["site_id"])
	assert.Equal(t, "redis://cache:6379/0", fields["store_url"])
	assert.Equal(t, "2024-05-01T00:00:00Z", fields["requested_at"])
}
