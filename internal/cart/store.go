package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps carts and contact prefill per session with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string    { return "cart:" + sessionID }
func contactKey(sessionID string) string { return "contact:" + sessionID }

// Load returns the session's cart, or an empty cart if none is stored.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	c := New()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return c, nil
}

// Save stores the cart. An empty cart deletes the key.
func (s *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	if c.IsEmpty() {
		if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("delete cart: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set cart: %w", err)
	}
	return nil
}

// LoadContact returns the cached contact, or a zero Contact.
func (s *RedisStore) LoadContact(ctx context.Context, sessionID string) (Contact, error) {
	var contact Contact
	raw, err := s.client.Get(ctx, contactKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return contact, nil
	}
	if err != nil {
		return contact, fmt.Errorf("get contact: %w", err)
	}
	if err := json.Unmarshal(raw, &contact); err != nil {
		return contact, fmt.Errorf("decode contact: %w", err)
	}
	return contact, nil
}

// SaveContact caches the contact for the session.
func (s *RedisStore) SaveContact(ctx context.Context, sessionID string, contact Contact) error {
	raw, err := json.Marshal(contact)
	if err != nil {
		return fmt.Errorf("encode contact: %w", err)
	}
	return s.client.Set(ctx, contactKey(sessionID), raw, s.ttl).Err()
}
