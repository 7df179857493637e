package service

import (
	"context"
	"testing"

	"oneshot/internal/config"
	"oneshot/internal/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBloomService(t *testing.T) (*BloomService, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	svc := NewBloomService(client, &config.BloomConfig{
		Capacity:  1000000,
		ErrorRate: 0.01,
	})
	return svc, s
}

func TestNewBloomService(t *testing.T) {
	svc, _ := newTestBloomService(t)
	assert.NotNil(t, svc)
	assert.False(t, svc.Ready())
}

func TestNewBloomService_WithMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockRedisClient(ctrl)
	mockClient.EXPECT().Exists(gomock.Any(), "site:bloom").Return(redis.NewIntCmd(context.Background()))
	mockClient.EXPECT().Do(gomock.Any(), "BF.RESERVE", "site:bloom", 0.01, int64(1000000)).Return(redis.NewCmd(context.Background()))

	svc := NewBloomService(mockClient, &config.BloomConfig{
		Capacity:  1000000,
		ErrorRate: 0.01,
	})
	assert.NotNil(t, svc)
}

func TestBloomService_AddAndExists(t *testing.T) {
	svc, s := newTestBloomService(t)
	ctx := context.Background()

	t.Run("added site exists", func(t *testing.T) {
		// miniredis has no BF.* commands, so the SET fallback is used
		require.NoError(t, svc.Add(ctx, "site-1"))
		assert.True(t, s.Exists("site:bloom:fb:site-1"))

		exists, err := svc.Exists(ctx, "site-1")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unknown site does not exist", func(t *testing.T) {
		exists, err := svc.Exists(ctx, "site-unknown")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestBloomService_Warm(t *testing.T) {
	svc, _ := newTestBloomService(t)
	ctx := context.Background()

	require.NoError(t, svc.Warm(ctx, []string{"site-1", "site-2"}))
	assert.True(t, svc.Ready())

	for _, id := range []string{"site-1", "site-2"} {
		exists, err := svc.Exists(ctx, id)
		assert.NoError(t, err)
		assert.True(t, exists)
	}
}

func TestBloomService_FailedAddDisablesPreCheck(t *testing.T) {
	svc, s := newTestBloomService(t)
	ctx := context.Background()

	require.NoError(t, svc.Warm(ctx, []string{"site-1"}))
	require.True(t, svc.Ready())

	s.SetError("LOADING Redis is loading the dataset in memory")
	assert.Error(t, svc.Add(ctx, "site-2"))
	s.SetError("")

	// site-2 is missing from the filter, so a negative answer is no longer definite
	assert.False(t, svc.Ready())

	require.NoError(t, svc.Warm(ctx, []string{"site-1", "site-2"}))
	assert.True(t, svc.Ready())
}

func TestBloomService_WarmFailureKeepsFilterUntrusted(t *testing.T) {
	svc, s := newTestBloomService(t)
	s.Close()

	err := svc.Warm(context.Background(), []string{"site-1"})
	assert.Error(t, err)
	assert.False(t, svc.Ready())
}

func TestBloomService_IsAvailable(t *testing.T) {
	svc, _ := newTestBloomService(t)
	// miniredis doesn't support BF.INFO
	assert.False(t, svc.IsAvailable(context.Background()))
}

func TestBloomService_fallbackKey(t *testing.T) {
	svc, _ := newTestBloomService(t)
	assert.Equal(t, "site:bloom:fb:abc", svc.fallbackKey("abc"))
}

func TestBloomService_ContextCancellation(t *testing.T) {
	svc, _ := newTestBloomService(t)

	t.Run("add with cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := svc.Add(ctx, "site-1")
		assert.Error(t, err)
	})

	t.Run("exists with cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Exists(ctx, "site-1")
		assert.Error(t, err)
	})
}
