package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("0xABC", "Admin", "s3cret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "0xABC", claims.WalletAddress)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "0xABC", claims.Subject)
}

func TestJWT_Rejects(t *testing.T) {
	token, err := GenerateJWT("0xABC", "Admin", "s3cret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)
	_, err = ParseJWT("not-a-token", "s3cret")
	assert.Error(t, err)

	_, err = GenerateJWT("0xABC", "Admin", "")
	assert.ErrorIs(t, err, ErrNoSecret)
	_, err = ParseJWT(token, "")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := &RedisCache{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	ctx := context.Background()

	type item struct {
		Name string `json:"name"`
	}

	var got item
	found, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "k", item{Name: "CenterA"}, time.Minute))
	found, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "CenterA", got.Name)

	mr.FastForward(2 * time.Minute)
	found, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry expires after ttl")

	require.NoError(t, cache.Set(ctx, "k", item{Name: "x"}, time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))
	found, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
