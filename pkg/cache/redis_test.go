package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(fmt.Sprintf("redis://%s", mr.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestSetGet(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "key1", "value1", time.Minute))

	val, err := client.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", val)
}

func TestGet_MissingKey(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestExists(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	exists, err := client.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.Set(ctx, "key1", "v", time.Minute))

	exists, err = client.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "key1", "v", time.Minute))
	require.NoError(t, client.Delete(ctx, "key1"))

	exists, err := client.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeletePattern(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "dashboard:stats:1", "a", time.Minute))
	require.NoError(t, client.Set(ctx, "dashboard:stats:2", "b", time.Minute))
	require.NoError(t, client.Set(ctx, "session:1", "c", time.Minute))

	require.NoError(t, client.DeletePattern(ctx, "dashboard:*"))

	exists, err := client.Exists(ctx, "dashboard:stats:1")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = client.Exists(ctx, "session:1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExpiration(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "ephemeral", "v", time.Second))

	mr.FastForward(2 * time.Second)

	exists, err := client.Exists(ctx, "ephemeral")
	require.NoError(t, err)
	assert.False(t, exists)
}
