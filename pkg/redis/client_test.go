package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(ctx, Config{URL: "http://not-redis"})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	_, err = NewClient(ctx, Config{URL: "redis://" + mr.Addr()})
	assert.Error(t, err, "missing password")

	c, err := NewClient(ctx, Config{URL: "redis://" + mr.Addr(), Password: "secret"})
	require.NoError(t, err)
	defer c.Close()
	assert.NoError(t, c.Set(ctx, "k", "v", 0).Err())
}

func TestHealthCheckWithoutClient(t *testing.T) {
	assert.Error(t, HealthCheck(context.Background()))
	assert.False(t, IsAvailable())
	assert.NoError(t, Close())
}
