package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestNewClient_InvalidURL(t *testing.T) {
	client, err := NewClient("invalid://url", "test", zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestClient_SetGet(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyLeaderboard("Q1-2026")
	require.NoError(t, client.Set(ctx, key, "payload", TTLLeaderboard))

	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "payload", val)
}

func TestClient_GetMissingKey(t *testing.T) {
	_, client := setupTestRedis(t)

	_, err := client.Get(context.Background(), client.KeyBuilder.KeyLeaderboard(""))
	assert.Equal(t, Nil, err)
}

func TestClient_TTLExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyActivityList("", 100)
	require.NoError(t, client.Set(ctx, key, "rows", TTLActivityList))

	mr.FastForward(TTLActivityList + time.Second)

	_, err := client.Get(ctx, key)
	assert.Equal(t, Nil, err)
}

func TestClient_DeleteByPattern(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, client.KeyBuilder.KeyLeaderboard("Q1-2026"), "a", time.Minute))
	require.NoError(t, client.Set(ctx, client.KeyBuilder.KeyActivityList("Q1-2026", 10), "b", time.Minute))
	require.NoError(t, client.Set(ctx, client.KeyBuilder.BuildKey("other:key"), "keep", time.Minute))

	require.NoError(t, client.DeleteByPattern(ctx, client.KeyBuilder.ActivityPattern()))

	_, err := client.Get(ctx, client.KeyBuilder.KeyLeaderboard("Q1-2026"))
	assert.Equal(t, Nil, err)
	_, err = client.Get(ctx, client.KeyBuilder.KeyActivityList("Q1-2026", 10))
	assert.Equal(t, Nil, err)

	val, err := client.Get(ctx, client.KeyBuilder.BuildKey("other:key"))
	require.NoError(t, err)
	assert.Equal(t, "keep", val)
}

func TestClient_Health(t *testing.T) {
	mr, client := setupTestRedis(t)

	assert.NoError(t, client.Health(context.Background()))

	mr.Close()
	assert.Error(t, client.Health(context.Background()))
}
