package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// InitRedis connects to endpoint. It returns nil when endpoint is empty or
// unreachable; callers then run without the catalog cache and session store.
func InitRedis(ctx context.Context, endpoint, password string) *redis.Client {
	if endpoint == "" {
		logrus.Warn("redis endpoint not set, catalog cache and sessions disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     endpoint,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logrus.Warnf("redis ping %s: %v, continuing without redis", endpoint, err)
		_ = client.Close()
		return nil
	}
	logrus.Infof("redis connected at %s", endpoint)
	return client
}
