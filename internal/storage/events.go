package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/memberwise/memberful-go/webhooks"
)

const eventsKey = "memberful:events"

// EventRecord is a received webhook event kept for replay and auditing.
type EventRecord struct {
	ID         string             `json:"id"`
	Type       webhooks.EventType `json:"type"`
	ReceivedAt time.Time          `json:"received_at"`
	Payload    go_json.RawMessage `json:"payload"`
}

type EventStore interface {
	Add(ctx context.Context, rec EventRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]EventRecord, error)

	// DeleteBefore removes records received before the given time.
	DeleteBefore(ctx context.Context, before time.Time) error
}

var _ EventStore = (*MemoryEventStore)(nil)

type MemoryEventStore struct {
	mu      sync.RWMutex
	records []EventRecord
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{}
}

func (s *MemoryEventStore) Add(_ context.Context, rec EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryEventStore) Recent(_ context.Context, limit int) ([]EventRecord, error) {
	if limit <= 0 {
		return []EventRecord{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > n {
		limit = n
	}

	out := make([]EventRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func (s *MemoryEventStore) DeleteBefore(_ context.Context, before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, rec := range s.records {
		if !rec.ReceivedAt.Before(before) {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	return nil
}

var _ EventStore = (*RedisEventStore)(nil)

type RedisEventStore struct {
	client *redis.Client
}

func NewRedisEventStore(client *redis.Client) *RedisEventStore {
	return &RedisEventStore{client: client}
}

func (s *RedisEventStore) Add(ctx context.Context, rec EventRecord) error {
	data, err := go_json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal event record: %w", err)
	}

	err = s.client.ZAdd(ctx, eventsKey, redis.Z{
		Score:  float64(rec.ReceivedAt.UnixMilli()),
		Member: string(data),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add event record: %w", err)
	}
	return nil
}

func (s *RedisEventStore) Recent(ctx context.Context, limit int) ([]EventRecord, error) {
	if limit <= 0 {
		return []EventRecord{}, nil
	}

	results, err := s.client.ZRevRange(ctx, eventsKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get event records: %w", err)
	}

	records := make([]EventRecord, 0, len(results))
	for _, data := range results {
		var rec EventRecord
		if err := go_json.Unmarshal([]byte(data), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *RedisEventStore) DeleteBefore(ctx context.Context, before time.Time) error {
	maxScore := fmt.Sprintf("(%d", before.UnixMilli())
	if err := s.client.ZRemRangeByScore(ctx, eventsKey, "-inf", maxScore).Err(); err != nil {
		return fmt.Errorf("failed to delete event records: %w", err)
	}
	return nil
}
