package repo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const userCacheKeyPrefix = "workouts::user::"

// UserCache maps vk user ids to internal user ids in redis, saving the
// users lookup that every request does.
type UserCache struct {
	rdb            redis.Cmdable
	ttl            time.Duration
	metricsManager *metrics.Manager
}

func NewUserCache(rdb redis.Cmdable, ttl time.Duration, metricsManager *metrics.Manager) *UserCache {
	return &UserCache{
		rdb:            rdb,
		ttl:            ttl,
		metricsManager: metricsManager,
	}
}

func userCacheKey(vkUserID int64) string {
	return fmt.Sprintf("%s%d", userCacheKeyPrefix, vkUserID)
}

func (c *UserCache) Get(ctx context.Context, vkUserID int64) (int, bool) {
	val, err := c.rdb.Get(ctx, userCacheKey(vkUserID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Errorf("user cache get [%d]: %s", vkUserID, err)
		}
		c.miss()
		return 0, false
	}

	id, err := strconv.Atoi(val)
	if err != nil {
		log.Errorf("user cache, invalid value for [%d]: %s", vkUserID, val)
		c.miss()
		return 0, false
	}

	if c.metricsManager != nil {
		c.metricsManager.CounterUserCacheHits.Inc()
	}
	return id, true
}

func (c *UserCache) Set(ctx context.Context, vkUserID int64, userID int) {
	if err := c.rdb.Set(ctx, userCacheKey(vkUserID), userID, c.ttl).Err(); err != nil {
		log.Errorf("user cache set [%d]: %s", vkUserID, err)
	}
}

func (c *UserCache) Delete(ctx context.Context, vkUserID int64) {
	if err := c.rdb.Del(ctx, userCacheKey(vkUserID)).Err(); err != nil {
		log.Errorf("user cache delete [%d]: %s", vkUserID, err)
	}
}

func (c *UserCache) miss() {
	if c.metricsManager != nil {
		c.metricsManager.CounterUserCacheMisses.Inc()
	}
}
