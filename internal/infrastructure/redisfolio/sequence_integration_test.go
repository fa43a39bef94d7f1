//go:build integration

package redisfolio

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

func setupRedisContainer(t *testing.T) (string, func()) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint, func() { _ = container.Terminate(ctx) }
}

func TestSequence_ConcurrentNextIsUnique(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	addr, cleanup := setupRedisContainer(t)
	defer cleanup()

	client, err := NewClient(config.RedisConfig{Addr: addr}, logger.Nop())
	require.NoError(t, err)
	defer client.Close()

	seq := NewSequence(client)
	ctx := context.Background()

	const n = 50
	var (
		mu   sync.Mutex
		seen = map[int64]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(ctx, "branch-1")
			assert.NoError(t, err)
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)

	other, err := seq.Next(ctx, "branch-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}
