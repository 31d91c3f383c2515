package redisdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	databaseerrors "storefront/internal/database"
	"storefront/pkg/lib/logger/sl"

	"github.com/go-redis/redis/v8"
)

const pingTimeout = 5 * time.Second

type Storage struct {
	log    *slog.Logger
	client *redis.Client
}

func New(log *slog.Logger, addr string, password string, db int) (*Storage, error) {
	const op = "database.redisdb.New"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.With("op", op).Error("Error connect to redis", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithParams(log, client), nil
}

func NewWithParams(log *slog.Logger, client *redis.Client) *Storage {
	return &Storage{
		log:    log,
		client: client,
	}
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	const op = "database.redisdb.Get"
	log := s.log.With("op", op, "key", key)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug("Key doesn't exist")
			return "", fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error reading key", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value string) error {
	const op = "database.redisdb.Set"
	log := s.log.With("op", op, "key", key)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		log.Error("Error writing key", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}
