// Package cache is a Redis-backed read-through/write-through accelerator for
// task lookups. It is advisory: the task repository stays the source of truth
// and every cache failure degrades to a repository read, never to a
// user-visible error.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskhub/taskhub/internal/metrics"
	"github.com/taskhub/taskhub/internal/models"
)

const (
	keyPrefix = "task:"

	// defaultTimeout bounds each Redis call so a slow cache degrades to the
	// repository instead of stalling the request.
	defaultTimeout = 250 * time.Millisecond
)

// TaskCache stores JSON-encoded tasks keyed by task id. A nil client yields a
// cache where every lookup misses and every write is a no-op, which lets the
// API run with Redis absent.
type TaskCache struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

func New(client *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{client: client, ttl: ttl, timeout: defaultTimeout}
}

// Get looks up a task by id. The second return value is false on a miss, on a
// decode failure, or on any Redis error.
func (c *TaskCache) Get(ctx context.Context, id int) (models.Task, bool) {
	if c.client == nil {
		metrics.RecordCacheMiss()
		return models.Task{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss()
		} else {
			metrics.RecordCacheError()
			slog.Warn("task cache get failed", "id", id, "error", err)
		}
		return models.Task{}, false
	}

	var task models.Task
	if err := json.Unmarshal(data, &task); err != nil {
		metrics.RecordCacheError()
		slog.Warn("task cache decode failed", "id", id, "error", err)
		return models.Task{}, false
	}

	metrics.RecordCacheHit()
	return task, true
}

// Put stores a task under its id with the configured TTL. Failures are logged
// and counted, nothing more.
func (c *TaskCache) Put(ctx context.Context, task models.Task) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(task)
	if err != nil {
		metrics.RecordCacheError()
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.Set(ctx, key(task.ID), data, c.ttl).Err(); err != nil {
		metrics.RecordCacheError()
		slog.Warn("task cache put failed", "id", task.ID, "error", err)
	}
}

// Invalidate drops the cached entry for id. Called on delete and on status
// change so stale statuses are never served.
func (c *TaskCache) Invalidate(ctx context.Context, id int) {
	if c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		metrics.RecordCacheError()
		slog.Warn("task cache invalidate failed", "id", id, "error", err)
	}
}

// Ping checks the Redis connection.
func (c *TaskCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return redis.ErrClosed
	}
	return c.client.Ping(ctx).Err()
}

func key(id int) string {
	return keyPrefix + strconv.Itoa(id)
}
