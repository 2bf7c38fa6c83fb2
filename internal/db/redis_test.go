package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/wuwenbin0122/userdash/internal/db"
	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

func TestCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping redis integration test")
	}

	ctx := context.Background()
	client, err := db.NewRedisClient(ctx, utils.RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	cache := db.NewCache(client, time.Minute)
	defer cache.Close()

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, err := cache.Users(ctx); err != nil || ok {
		t.Fatalf("expected cache miss, got ok=%v err=%v", ok, err)
	}

	if err := cache.SetUsers(ctx, models.SampleUsers()); err != nil {
		t.Fatalf("set users: %v", err)
	}

	source := &stubSource{err: db.ErrUsersUnavailable}
	store := db.NewUserStore(db.WithCache(cache), db.WithSource("postgres", source))

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != len(models.SampleUsers()) || source.calls != 0 {
		t.Fatalf("expected cached users without touching sources, got %d users and %d calls", len(users), source.calls)
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
}

func TestNilCacheIsAMiss(t *testing.T) {
	var cache *db.Cache
	if _, ok, err := cache.Users(context.Background()); ok || err != nil {
		t.Fatalf("nil cache should miss silently")
	}
	if err := cache.SetUsers(context.Background(), nil); err != nil {
		t.Fatalf("nil cache set should be a no-op: %v", err)
	}
}

func TestNewRedisClientRequiresAddr(t *testing.T) {
	if _, err := db.NewRedisClient(context.Background(), utils.RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty address")
	}
}
