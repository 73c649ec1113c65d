package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

const settingsTable = `CREATE TABLE IF NOT EXISTS planner_settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// PostgresStore maps keys onto a single settings table. Lists are stored as
// JSON-encoded text so full-key overwrite semantics match the other backends.
type PostgresStore struct {
	db   *sqlx.DB
	once sync.Once
	err  error
}

// NewPostgresStore wraps an existing sqlx handle. The settings table is
// created on first use.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	if err := s.init(ctx); err != nil {
		return "", err
	}
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM planner_settings WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) GetList(ctx context.Context, key string) ([]string, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode list %s: %w", key, err)
	}
	return values, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	const query = `INSERT INTO planner_settings (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) SetList(ctx context.Context, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode list %s: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM planner_settings WHERE key = $1`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) init(ctx context.Context) error {
	s.once.Do(func() {
		if _, err := s.db.ExecContext(ctx, settingsTable); err != nil {
			s.err = fmt.Errorf("create planner_settings: %w", err)
		}
	})
	return s.err
}
