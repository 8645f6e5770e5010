package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "localhost" {
		t.Errorf("expected host localhost, got %s", cfg.Host)
	}
	if cfg.Port != 6379 {
		t.Errorf("expected port 6379, got %d", cfg.Port)
	}
	if cfg.PoolSize != 100 {
		t.Errorf("expected pool size 100, got %d", cfg.PoolSize)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected 3 max retries, got %d", cfg.MaxRetries)
	}
	if cfg.DialTimeout != 5*time.Second {
		t.Errorf("expected 5s dial timeout, got %v", cfg.DialTimeout)
	}
}

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"defaults", Config{Host: "localhost", Port: 6379}, "localhost:6379"},
		{"custom host and port", Config{Host: "redis.internal", Port: 6380}, "redis.internal:6380"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Addr(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewClient_FailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := &Config{
		Host:          "localhost",
		Port:          1, // nothing listens here
		DialTimeout:   100 * time.Millisecond,
		ReadTimeout:   100 * time.Millisecond,
		WriteTimeout:  100 * time.Millisecond,
		MaxRetries:    1,
		RetryInterval: 10 * time.Millisecond,
	}

	client, err := NewClient(ctx, cfg)
	if err == nil {
		client.Close()
		t.Fatal("expected connection error for unreachable redis")
	}
}

// --- Integration tests (require a running Redis) ---

func skipIfNoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestClient(t *testing.T) *Client {
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Host = getEnv("REDIS_HOST", "localhost")

	client, err := NewClient(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func TestClient_SetGet(t *testing.T) {
	skipIfNoIntegration(t)
	client := setupTestClient(t)
	ctx := context.Background()

	key := "test:set-get"
	defer client.Del(ctx, key)

	if err := client.Set(ctx, key, "value-1", time.Minute).Err(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := client.Get(ctx, key).Result()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "value-1" {
		t.Errorf("expected value-1, got %s", got)
	}
}

func TestClient_GetMissingKey(t *testing.T) {
	skipIfNoIntegration(t)
	client := setupTestClient(t)

	_, err := client.Get(context.Background(), "test:does-not-exist").Result()
	if err != goredis.Nil {
		t.Errorf("expected redis.Nil, got %v", err)
	}
}

func TestClient_SetNX(t *testing.T) {
	skipIfNoIntegration(t)
	client := setupTestClient(t)
	ctx := context.Background()

	key := "test:setnx"
	defer client.Del(ctx, key)

	ok, err := client.SetNX(ctx, key, "first", time.Minute).Result()
	if err != nil {
		t.Fatalf("SetNX failed: %v", err)
	}
	if !ok {
		t.Fatal("expected first SetNX to win")
	}

	ok, err = client.SetNX(ctx, key, "second", time.Minute).Result()
	if err != nil {
		t.Fatalf("SetNX failed: %v", err)
	}
	if ok {
		t.Error("expected second SetNX to lose")
	}

	got, _ := client.Get(ctx, key).Result()
	if got != "first" {
		t.Errorf("expected first writer's value, got %s", got)
	}
}

func TestClient_DelAndExists(t *testing.T) {
	skipIfNoIntegration(t)
	client := setupTestClient(t)
	ctx := context.Background()

	key := "test:del"
	if err := client.Set(ctx, key, "x", time.Minute).Err(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	n, err := client.Exists(ctx, key).Result()
	if err != nil || n != 1 {
		t.Fatalf("expected key to exist, got n=%d err=%v", n, err)
	}

	if err := client.Del(ctx, key).Err(); err != nil {
		t.Fatalf("Del failed: %v", err)
	}

	n, err = client.Exists(ctx, key).Result()
	if err != nil || n != 0 {
		t.Errorf("expected key gone, got n=%d err=%v", n, err)
	}
}

func TestClient_ExpireAndTTL(t *testing.T) {
	skipIfNoIntegration(t)
	client := setupTestClient(t)
	ctx := context.Background()

	key := "test:ttl"
	defer client.Del(ctx, key)

	if err := client.Set(ctx, key, "x", 0).Err(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := client.Expire(ctx, key, time.Hour).Err(); err != nil {
		t.Fatalf("Expire failed: %v", err)
	}

	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("expected TTL in (0, 1h], got %v", ttl)
	}
}

func TestClient_HealthCheck(t *testing.T) {
	skipIfNoIntegration(t)
	client := setupTestClient(t)

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
