package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/nvalente/planner-api/internal/models"
	"github.com/nvalente/planner-api/pkg/kvstore"
)

// SessionRepository persists the session collection as one JSON array under
// a single store key.
type SessionRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(store kvstore.Store, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{store: store, logger: logger}
}

// List returns every stored session. An absent key yields an empty
// collection; records without an id are skipped.
func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	raw, err := r.store.Get(ctx, KeySessions)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return []models.Session{}, nil
		}
		return nil, fmt.Errorf("read sessions: %w", err)
	}

	var decoded []models.Session
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	items := make([]models.Session, 0, len(decoded))
	for i := range decoded {
		if decoded[i].ID == "" {
			r.logger.Warn("skipping session without id", zap.Int("index", i))
			continue
		}
		decoded[i].Normalize()
		items = append(items, decoded[i])
	}
	return items, nil
}

// Upsert removes any existing session with the same id and appends the
// incoming record.
func (r *SessionRepository) Upsert(ctx context.Context, session models.Session) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Session, 0, len(items)+1)
	for _, item := range items {
		if item.ID != session.ID {
			kept = append(kept, item)
		}
	}
	session.Normalize()
	kept = append(kept, session)

	return r.write(ctx, kept)
}

// Delete removes the session with the given id; a missing id is a no-op.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Session, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	return r.write(ctx, kept)
}

// Clear removes the whole collection key.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, KeySessions); err != nil {
		return fmt.Errorf("remove %s: %w", KeySessions, err)
	}
	return nil
}

func (r *SessionRepository) write(ctx context.Context, items []models.Session) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := r.store.Set(ctx, KeySessions, string(raw)); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}
