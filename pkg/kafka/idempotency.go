package kafka

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// IdempotencyStore remembers which event IDs were handled.
type IdempotencyStore interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	// Remember is called only after the handler succeeded.
	Remember(ctx context.Context, eventID string) error
}

// MemoryIdempotencyStore keeps event IDs in process memory for ttl.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryIdempotencyStore creates a store whose entries expire after ttl.
func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryIdempotencyStore) Seen(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at, ok := s.entries[eventID]
	if !ok {
		return false, nil
	}
	if s.now().Sub(at) > s.ttl {
		delete(s.entries, eventID)
		return false, nil
	}
	return true, nil
}

func (s *MemoryIdempotencyStore) Remember(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, at := range s.entries {
		if now.Sub(at) > s.ttl {
			delete(s.entries, id)
		}
	}
	s.entries[eventID] = now
	return nil
}

// Len reports the number of stored IDs, expired ones included.
func (s *MemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Deduplicate skips events whose ID the store has already seen. A failing
// store lookup does not block processing.
func Deduplicate(store IdempotencyStore, next Handler, logger *slog.Logger) Handler {
	return func(ctx context.Context, event *Event) error {
		if event.ID == "" {
			return next(ctx, event)
		}

		seen, err := store.Seen(ctx, event.ID)
		if err != nil {
			logger.WarnContext(ctx, "idempotency lookup failed",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()),
			)
		}
		if seen {
			logger.DebugContext(ctx, "duplicate event skipped",
				slog.String("event_id", event.ID),
				slog.String("event_type", event.Type),
			)
			return nil
		}

		if err := next(ctx, event); err != nil {
			return err
		}

		if err := store.Remember(ctx, event.ID); err != nil {
			logger.WarnContext(ctx, "idempotency record failed",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
}
