package cache

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a test Redis client.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func testKey(page string) Key {
	return Key{QueryParams: url.Values{
		"page":   []string{page},
		"format": []string{"json"},
	}}
}

func TestNewManager_NilRedisPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil redis client")
		}
	}()
	NewManager(nil, time.Minute)
}

func TestManager_GetMiss(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient, time.Minute)

	_, err := manager.Get(context.Background(), testKey("1"))
	if err != ErrCacheMiss {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestManager_SetGet(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient, time.Minute)
	ctx := context.Background()

	body := []byte(`{"data": {"rows": [], "total_hits": 0, "num_pages": 0}}`)
	key := testKey("1")

	if err := manager.Set(ctx, key, body); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := manager.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("Get() = %q, want %q", got, body)
	}
}

func TestManager_Delete(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient, time.Minute)
	ctx := context.Background()

	key := testKey("1")
	if err := manager.Set(ctx, key, []byte(`{}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := manager.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := manager.Get(ctx, key)
	if err != ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
	}
}

func TestManager_EntryExpires(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient, 50*time.Millisecond)
	ctx := context.Background()

	key := testKey("1")
	if err := manager.Set(ctx, key, []byte(`{}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	_, err := manager.Get(ctx, key)
	if err != ErrCacheMiss {
		t.Errorf("Get() after TTL error = %v, want ErrCacheMiss", err)
	}
}
