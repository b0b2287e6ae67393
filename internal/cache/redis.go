package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Catalog cache keys. Catalogs change rarely and are read on every wizard
// open, so they get long TTLs and explicit invalidation on admin writes.
const (
	MaterialsKeyFmt  = "catalog:materiel:%s"
	ChemicalsKey     = "catalog:chemicals"
	EquipmentKey     = "catalog:equipment"
	ConsumablesKey   = "catalog:consommables"
	ClassesKey       = "catalog:classes"
	RoomsKey         = "catalog:salles"
	CatalogTTL       = 30 * time.Minute
	EventsListKeyFmt = "events:list:%s"
	EventsTTL        = 2 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// MaterialsKey builds the per-discipline material catalog key.
func MaterialsKey(discipline string) string {
	return fmt.Sprintf(MaterialsKeyFmt, discipline)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateEventCaches clears the cached event lists.
// Called when: CreateEvent, UpdateEvent, MoveEvent, state changes, deletes.
func InvalidateEventCaches(ctx context.Context) {
	InvalidatePattern(ctx, "events:*")
}

// InvalidateCatalogCaches clears the resource catalog caches.
// Called when: stock adjustments, catalog item create/update/delete.
func InvalidateCatalogCaches(ctx context.Context) {
	InvalidatePattern(ctx, "catalog:*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
