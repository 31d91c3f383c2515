package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	databaseerrors "storefront/internal/database"
	"storefront/pkg/lib/logger/sl"
)

// Storage keeps key-value pairs in process memory. Contents are lost on
// restart.
type Storage struct {
	log  *slog.Logger
	mu   sync.RWMutex
	data map[string]string
}

func New(log *slog.Logger) *Storage {
	return &Storage{
		log:  log,
		data: make(map[string]string),
	}
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	const op = "database.memory.Get"
	log := s.log.With("op", op, "key", key)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value string) error {
	const op = "database.memory.Set"
	log := s.log.With("op", op, "key", key)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *Storage) Close() error {
	return nil
}
