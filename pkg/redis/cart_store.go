package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/checkout"
)

// Sessions stores cart sessions in Redis. A session is a hash at cart:{id} and each of its
// cart keys lives at cart:{id}:{key}. Every write pushes the expiry of both forward.
type Sessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessions(client *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *Sessions) Create(ctx context.Context, sessionID string) error {
	key := sessionKey(sessionID)
	now := time.Now().UTC()

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"created_at": now.Format(time.RFC3339),
		"expires_at": now.Add(s.ttl).Format(time.RFC3339),
	})
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create cart session %s: %w", sessionID, err)
	}
	return nil
}

func (s *Sessions) Open(ctx context.Context, sessionID string) (cart.Store, error) {
	exists, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart session %s: %w", sessionID, err)
	}
	if exists == 0 {
		return nil, cart.ErrSessionNotFound
	}
	return &CartStore{client: s.client, sessionID: sessionID, ttl: s.ttl}, nil
}

// CartStore is a cart.Store scoped to one session.
type CartStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

// sessionKeys are the cart keys written under one session.
var sessionKeys = []string{cart.CartKey, cart.PromoKey, checkout.ShippingInfoKey}

func (c *CartStore) key(key string) string {
	return fmt.Sprintf("cart:%s:%s", c.sessionID, key)
}

func (c *CartStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key(key), err)
	}
	return data, nil
}

func (c *CartStore) Set(ctx context.Context, key string, value []byte) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, c.key(key), value, c.ttl)
	c.touch(ctx, pipe)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key(key), err)
	}
	return nil
}

func (c *CartStore) Delete(ctx context.Context, key string) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key(key))
	c.touch(ctx, pipe)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", c.key(key), err)
	}
	return nil
}

// touch queues an expiry refresh for the session hash and every cart key it owns, so the
// keys of an active session live and die together.
func (c *CartStore) touch(ctx context.Context, pipe redis.Pipeliner) {
	session := sessionKey(c.sessionID)
	pipe.HSet(ctx, session, "expires_at", time.Now().Add(c.ttl).UTC().Format(time.RFC3339))
	pipe.Expire(ctx, session, c.ttl)
	for _, key := range sessionKeys {
		pipe.Expire(ctx, c.key(key), c.ttl)
	}
}
