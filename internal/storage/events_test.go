package storage

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/memberwise/memberful-go/webhooks"
)

func TestMemoryEventStoreRecent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryEventStore()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		rec := EventRecord{
			ID:         strconv.Itoa(i),
			Type:       webhooks.EventMemberSignup,
			ReceivedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Add(ctx, rec); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	recent, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len(recent) = %d, want 3", len(recent))
	}
	// newest first
	for i, wantID := range []string{"4", "3", "2"} {
		if recent[i].ID != wantID {
			t.Errorf("recent[%d].ID = %q, want %q", i, recent[i].ID, wantID)
		}
	}

	all, err := store.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(all) != 5 {
		t.Errorf("len(all) = %d, want 5", len(all))
	}
}

func TestMemoryEventStoreRecentNonPositiveLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryEventStore()

	if err := store.Add(ctx, EventRecord{ID: "0", Type: webhooks.EventMemberSignup}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	for _, limit := range []int{0, -1} {
		recent, err := store.Recent(ctx, limit)
		if err != nil {
			t.Fatalf("Recent(%d) error = %v", limit, err)
		}
		if len(recent) != 0 {
			t.Errorf("Recent(%d) returned %d records, want 0", limit, len(recent))
		}
	}
}

func TestMemoryEventStoreDeleteBefore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryEventStore()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range 4 {
		rec := EventRecord{
			ID:         strconv.Itoa(i),
			Type:       webhooks.EventOrderPurchased,
			ReceivedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Add(ctx, rec); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if err := store.DeleteBefore(ctx, base.Add(2*time.Hour)); err != nil {
		t.Fatalf("DeleteBefore() error = %v", err)
	}

	remaining, err := store.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("len(remaining) = %d, want 2", len(remaining))
	}
	// the cutoff record itself survives
	if remaining[1].ID != "2" {
		t.Errorf("oldest remaining = %q, want %q", remaining[1].ID, "2")
	}
}
