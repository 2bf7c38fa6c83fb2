package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

const usersCacheKey = "userdash:users"

// Cache keeps the encoded user list in redis for a short TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, cfg utils.RedisConfig) (*redis.Client, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return client, nil
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{client: client, ttl: ttl}
}

// Users returns the cached list. The second result is false on a miss.
func (c *Cache) Users(ctx context.Context) ([]models.User, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	payload, err := c.client.Get(ctx, usersCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis: get users: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(payload, &users); err != nil {
		return nil, false, fmt.Errorf("redis: decode users: %w", err)
	}
	return users, true, nil
}

func (c *Cache) SetUsers(ctx context.Context, users []models.User) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("redis: encode users: %w", err)
	}
	if err := c.client.Set(ctx, usersCacheKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set users: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, usersCacheKey).Err(); err != nil {
		return fmt.Errorf("redis: invalidate users: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
