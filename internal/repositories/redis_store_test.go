package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observeLogs swaps the global logger for an in-memory one for the duration of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestRedisStore_LogFields(t *testing.T) {
	logs := observeLogs(t)

	// nothing listens on port 1, every command fails fast
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	store := NewRedisStore(rdb, "eduai:", 0)
	ctx := context.Background()

	_, err := store.Get(ctx, "device:1:current_user")
	assert.Error(t, err)
	assert.Error(t, store.Set(ctx, "device:1:current_user", "{}"))
	assert.Error(t, store.Delete(ctx, "device:1:current_user"))

	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	get := logs.FilterMessage("redis get").All()
	require.Len(t, get, 1)
	assert.Equal(t, zapcore.DebugLevel, get[0].Level)
	assert.Equal(t, "eduai:device:1:current_user", get[0].ContextMap()["key"])
	assert.Equal(t, 1, logs.FilterMessage("redis set").Len())
	assert.Equal(t, 1, logs.FilterMessage("redis del").Len())
}

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	assert.NoError(t, rdb.Ping(ctx).Err())

	return rdb, func() {
		rdb.Close()
		redisC.Terminate(ctx)
	}
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	store := NewRedisStore(rdb, "eduai:", 2*time.Second)

	t.Run("Set and Get", func(t *testing.T) {
		assert.NoError(t, store.Set(ctx, "device:1:current_user", `{"provider":"demo"}`))

		got, err := store.Get(ctx, "device:1:current_user")
		assert.NoError(t, err)
		assert.Equal(t, `{"provider":"demo"}`, got)

		raw, err := rdb.Get(ctx, "eduai:device:1:current_user").Result()
		assert.NoError(t, err)
		assert.Equal(t, got, raw)
	})

	t.Run("Get missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.NoError(t, store.Set(ctx, "k1", "v"))
		assert.NoError(t, store.Delete(ctx, "k1", "k2"))
		_, err := store.Get(ctx, "k1")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Value expires", func(t *testing.T) {
		assert.NoError(t, store.Set(ctx, "short", "v"))
		time.Sleep(3 * time.Second)
		_, err := store.Get(ctx, "short")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})
}
