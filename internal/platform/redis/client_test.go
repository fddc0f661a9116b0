// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/taskboard/internal/platform/redis"
)

func TestOptions(t *testing.T) {
	options, err := redisstore.Options("redis://cache.internal:6380/2")
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", options.Addr)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, 10, options.PoolSize)
	assert.Equal(t, time.Second, options.ReadTimeout)

	options, err = redisstore.Options("redis://cache.internal:6379/0?pool_size=3&read_timeout=250ms")
	require.NoError(t, err)
	assert.Equal(t, 3, options.PoolSize)
	assert.Equal(t, 250*time.Millisecond, options.ReadTimeout)

	_, err = redisstore.Options("http://cache.internal")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	client, err := redisstore.NewClient(ctx, "redis://"+server.Addr(), logger)
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, redisstore.Ping(ctx, client))

	server.Close()
	assert.Error(t, redisstore.Ping(ctx, client))
}

func TestNewClient_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := redisstore.NewClient(context.Background(), "redis://"+addr, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
