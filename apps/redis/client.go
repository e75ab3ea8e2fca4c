package redis

import (
	"context"
	"strings"
	"time"

	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/settings"
	"github.com/redis/go-redis/v9"
)

var (
	// Client is the universal Redis client; nil when Redis is not configured.
	Client redis.UniversalClient
	ctx    = context.Background()
)

// Initialize creates the Redis connection from settings. Redis is optional:
// without it, signout token revocation degrades to a no-op.
func Initialize() error {
	address := settings.Get("REDIS.ADDRESS").String()
	addresses := settings.Get("REDIS.ADDRESSES").String()

	var nodes []string
	if addresses != "" {
		for _, addr := range strings.Split(addresses, ",") {
			if trimmed := strings.TrimSpace(addr); trimmed != "" {
				nodes = append(nodes, trimmed)
			}
		}
	} else if address != "" {
		nodes = []string{address}
	}

	if len(nodes) == 0 {
		log.Warning("Redis not configured; token revocation will be disabled")
		return nil
	}

	Client = redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        nodes,
		Password:     settings.Get("REDIS.PASSWORD").String(),
		DB:           int(settings.Get("REDIS.DB", 0).Int64()),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := Client.Ping(ctx).Err(); err != nil {
		Client = nil
		return err
	}

	log.Info("Connected to Redis at %s", strings.Join(nodes, ","))
	return nil
}

// IsAvailable reports whether the Redis connection is up.
func IsAvailable() bool {
	return Client != nil
}

// Close shuts the connection down.
func Close() error {
	if Client == nil {
		return nil
	}
	err := Client.Close()
	Client = nil
	return err
}
