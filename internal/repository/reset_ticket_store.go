package repository

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetTicketStore binds a verified security answer to a subsequent password
// reset. Issue records that the answer checked out; the ticket must still be
// live when the reset lands, and consuming it is one-shot.
type ResetTicketStore interface {
	Issue(ctx context.Context, email string) error
	Consume(ctx context.Context, email string) (bool, error)
}

type redisResetTicketStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisResetTicketStore returns a Redis-backed ticket store.
func NewRedisResetTicketStore(client *redis.Client, ttl time.Duration) ResetTicketStore {
	return &redisResetTicketStore{client: client, ttl: ttl}
}

func resetKey(email string) string {
	return "pwreset:" + email
}

func (s *redisResetTicketStore) Issue(ctx context.Context, email string) error {
	return s.client.Set(ctx, resetKey(email), "1", s.ttl).Err()
}

func (s *redisResetTicketStore) Consume(ctx context.Context, email string) (bool, error) {
	deleted, err := s.client.Del(ctx, resetKey(email)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

type memoryResetTicketStore struct {
	mu      sync.Mutex
	tickets map[string]time.Time
	ttl     time.Duration
}

// NewMemoryResetTicketStore returns a single-process ticket store, used when
// Redis is not configured.
func NewMemoryResetTicketStore(ttl time.Duration) ResetTicketStore {
	return &memoryResetTicketStore{tickets: make(map[string]time.Time), ttl: ttl}
}

func (s *memoryResetTicketStore) Issue(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[email] = time.Now().Add(s.ttl)
	return nil
}

func (s *memoryResetTicketStore) Consume(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.tickets[email]
	if !ok {
		return false, nil
	}
	delete(s.tickets, email)
	if time.Now().After(expiresAt) {
		return false, nil
	}
	return true, nil
}
