// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"slotline/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient holds ephemeral timeline state (candidate sets).
	CacheClient *redis.Client
	// PrefsCacheClient holds user preferences such as the creation timezone.
	PrefsCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the Redis client used for candidate sets.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the candidate cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitPrefsCache initializes the Redis client used for user preferences.
func InitPrefsCache() {
	PrefsCacheClient = newRedisClient(config.AppConfig.RedisPrefsDB, "Prefs")
}

// GetPrefsCacheClient returns the preferences client.
func GetPrefsCacheClient() *redis.Client {
	if PrefsCacheClient == nil {
		InitPrefsCache()
	}
	return PrefsCacheClient
}
