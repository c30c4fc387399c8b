package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FlashTTL bounds how long an unread flash message is kept.
const FlashTTL = time.Minute

// FlashStore keeps a one-shot message between a successful submit and the
// page it redirects to. Pop removes the message; an unknown id yields "".
type FlashStore interface {
	Put(ctx context.Context, message string) (string, error)
	Pop(ctx context.Context, id string) (string, error)
}

type flashEntry struct {
	message string
	expires time.Time
}

// MemoryFlashStore is the in-process store used when redis is not configured.
type MemoryFlashStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]flashEntry
}

var _ FlashStore = (*MemoryFlashStore)(nil)

func NewMemoryFlashStore(ttl time.Duration) *MemoryFlashStore {
	if ttl <= 0 {
		ttl = FlashTTL
	}
	return &MemoryFlashStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]flashEntry),
	}
}

func (s *MemoryFlashStore) Put(_ context.Context, message string) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, k)
		}
	}
	s.entries[id] = flashEntry{message: message, expires: now.Add(s.ttl)}
	return id, nil
}

func (s *MemoryFlashStore) Pop(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return "", nil
	}
	delete(s.entries, id)
	if s.now().After(e.expires) {
		return "", nil
	}
	return e.message, nil
}

// RedisFlashStore shares flash messages between admin instances.
type RedisFlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ FlashStore = (*RedisFlashStore)(nil)

func NewRedisFlashStore(client *redis.Client, ttl time.Duration) *RedisFlashStore {
	if ttl <= 0 {
		ttl = FlashTTL
	}
	return &RedisFlashStore{client: client, ttl: ttl}
}

func flashKey(id string) string {
	return "flash:" + id
}

func (s *RedisFlashStore) Put(ctx context.Context, message string) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, flashKey(id), message, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("flash put: %w", err)
	}
	return id, nil
}

func (s *RedisFlashStore) Pop(ctx context.Context, id string) (string, error) {
	msg, err := s.client.GetDel(ctx, flashKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("flash pop: %w", err)
	}
	return msg, nil
}
