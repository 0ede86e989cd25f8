package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mock/mock_client.go -package=redismock -source=interface.go

// Client is the subset of go-redis the repositories rely on. Both the
// single-node and cluster clients satisfy it.
type Client interface {
	redis.UniversalClient
}
