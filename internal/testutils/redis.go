// Package testutils holds shared test helpers
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-progression/internal/redis"
)

// CreateTestRedisClient starts an in-memory Redis and returns a client bound
// to it. The server is closed through t.Cleanup.
func CreateTestRedisClient(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(&redis.Config{Addrs: []string{mr.Addr()}})
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}
