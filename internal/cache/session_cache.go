package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// L1 cache (in-memory) TTL
	L1CacheTTL = 1 * time.Minute

	// L2 cache (Redis) TTL
	L2CacheTTL = 15 * time.Minute

	// Redis key prefix for session state
	SessionKeyPrefix = "session:active:"
)

type l1Entry struct {
	active    bool
	expiresAt time.Time
}

// SessionCache answers "is this session still active?" without a database
// round trip on every request. Redis is optional; with no client the cache
// degrades to the in-memory layer only, and a miss means "ask the database".
type SessionCache struct {
	l1 sync.Map

	redisClient  *redis.Client
	redisEnabled bool
}

// NewSessionCache creates a new session cache
func NewSessionCache(redisClient *redis.Client) *SessionCache {
	c := &SessionCache{
		redisClient:  redisClient,
		redisEnabled: redisClient != nil,
	}

	go c.cleanupL1()

	return c
}

// Get reports the cached active state for a session. The second return
// value is false on a cache miss.
func (c *SessionCache) Get(ctx context.Context, sessionID uuid.UUID) (bool, bool) {
	key := SessionKeyPrefix + sessionID.String()

	if entry, ok := c.l1.Load(key); ok {
		e := entry.(l1Entry)
		if time.Now().Before(e.expiresAt) {
			return e.active, true
		}
		c.l1.Delete(key)
	}

	if c.redisEnabled {
		val, err := c.redisClient.Get(ctx, key).Result()
		if err == nil {
			active := val == "1"
			c.setL1(key, active)
			return active, true
		}
	}

	return false, false
}

// Set records the active state for a session in both layers
func (c *SessionCache) Set(ctx context.Context, sessionID uuid.UUID, active bool) {
	key := SessionKeyPrefix + sessionID.String()
	c.setL1(key, active)

	if c.redisEnabled {
		val := "0"
		if active {
			val = "1"
		}
		c.redisClient.Set(ctx, key, val, L2CacheTTL)
	}
}

// Invalidate drops a session from both layers, forcing the next check to
// hit the database
func (c *SessionCache) Invalidate(ctx context.Context, sessionID uuid.UUID) {
	key := SessionKeyPrefix + sessionID.String()
	c.l1.Delete(key)

	if c.redisEnabled {
		c.redisClient.Del(ctx, key)
	}
}

func (c *SessionCache) setL1(key string, active bool) {
	c.l1.Store(key, l1Entry{
		active:    active,
		expiresAt: time.Now().Add(L1CacheTTL),
	})
}

// cleanupL1 periodically removes expired entries from the in-memory layer
func (c *SessionCache) cleanupL1() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.l1.Range(func(key, value interface{}) bool {
			if now.After(value.(l1Entry).expiresAt) {
				c.l1.Delete(key)
			}
			return true
		})
	}
}
