package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskhub/taskhub/internal/models"
)

// Tests against a live Redis on localhost:6379; skipped when unavailable.
const testRedisAddr = "localhost:6379"

func setupTestCache(t *testing.T) *TaskCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return New(client, time.Minute)
}

func TestTaskCache_PutGetInvalidate(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	task := models.Task{ID: 7, Title: "buy milk", Status: models.StatusPending}

	if _, ok := c.Get(ctx, 7); ok {
		t.Fatal("expected miss before Put")
	}

	c.Put(ctx, task)

	got, ok := c.Get(ctx, 7)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.ID != 7 || got.Title != "buy milk" || got.Status != models.StatusPending {
		t.Errorf("unexpected cached task: %+v", got)
	}

	c.Invalidate(ctx, 7)

	if _, ok := c.Get(ctx, 7); ok {
		t.Error("expected miss after Invalidate")
	}
}

func TestTaskCache_NilClientDegrades(t *testing.T) {
	c := New(nil, time.Minute)
	ctx := context.Background()

	// All operations are no-ops; Get always misses.
	c.Put(ctx, models.Task{ID: 1, Title: "x"})
	if _, ok := c.Get(ctx, 1); ok {
		t.Error("nil-client cache should always miss")
	}
	c.Invalidate(ctx, 1)

	if err := c.Ping(ctx); err == nil {
		t.Error("nil-client Ping should error")
	}
}
