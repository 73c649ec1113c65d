package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/nvalente/planner-api/internal/models"
	"github.com/nvalente/planner-api/pkg/kvstore"
)

// AssignmentRepository persists the assignment collection as one JSON array
// under a single store key.
type AssignmentRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(store kvstore.Store, logger *zap.Logger) *AssignmentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentRepository{store: store, logger: logger}
}

// List returns every stored assignment. An absent key yields an empty
// collection. Records without an id are skipped rather than failing the
// whole fetch; missing optional fields fall back to their defaults.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	raw, err := r.store.Get(ctx, KeyAssignments)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return []models.Assignment{}, nil
		}
		return nil, fmt.Errorf("read assignments: %w", err)
	}

	var decoded []models.Assignment
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}

	items := make([]models.Assignment, 0, len(decoded))
	for i := range decoded {
		if decoded[i].ID == "" {
			r.logger.Warn("skipping assignment without id", zap.Int("index", i))
			continue
		}
		decoded[i].Normalize()
		items = append(items, decoded[i])
	}
	return items, nil
}

// Upsert removes any existing assignment with the same id and appends the
// incoming record, making insert and update the same operation.
func (r *AssignmentRepository) Upsert(ctx context.Context, assignment models.Assignment) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Assignment, 0, len(items)+1)
	for _, item := range items {
		if item.ID != assignment.ID {
			kept = append(kept, item)
		}
	}
	assignment.Normalize()
	kept = append(kept, assignment)

	return r.write(ctx, kept)
}

// Delete removes the assignment with the given id. A missing id leaves the
// stored collection untouched.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Assignment, 0, len(items))
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
func (r *AssignmentRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, KeyAssignments); err != nil {
		return fmt.Errorf("remove %s: %w", KeyAssignments, err)
	}
	return nil
}

func (r *AssignmentRepository) write(ctx context.Context, items []models.Assignment) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode assignments: %w", err)
	}
	if err := r.store.Set(ctx, KeyAssignments, string(raw)); err != nil {
		return fmt.Errorf("write assignments: %w", err)
	}
	return nil
}
