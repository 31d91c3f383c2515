package psql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	databaseerrors "storefront/internal/database"
	"storefront/pkg/lib/logger/sl"

	_ "github.com/lib/pq"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Storage struct {
	log *slog.Logger
	db  *sqlx.DB
}

func New(log *slog.Logger, connStr string) (*Storage, error) {
	const op = "database.psql.New"
	opLog := log.With("op", op)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		opLog.Error("Error connect to database", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		opLog.Error("Error setting migration dialect", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		opLog.Error("Error applying migrations", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		log: log,
		db:  db,
	}, nil
}

func NewWithParams(log *slog.Logger, db *sqlx.DB) *Storage {
	return &Storage{
		log: log,
		db:  db,
	}
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	const op = "database.psql.Get"
	log := s.log.With("op", op, "key", key)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var value string
	err := s.db.QueryRowxContext(ctx, `
		SELECT value FROM kv
		WHERE key=$1;
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("Key doesn't exist")
			return "", fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error reading key", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value string) error {
	const op = "database.psql.Set"
	log := s.log.With("op", op, "key", key)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
	`, key, value); err != nil {
		log.Error("Error writing key", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
