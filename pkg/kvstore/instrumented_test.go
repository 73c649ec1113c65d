package kvstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	operations []string
	failures   int
}

func (r *recordingObserver) ObserveStoreOperation(operation string, _ time.Duration, err error) {
	r.operations = append(r.operations, operation)
	if err != nil {
		r.failures++
	}
}

func TestInstrumentReportsEveryOperation(t *testing.T) {
	obs := &recordingObserver{}
	store := Instrument(NewFileStore(filepath.Join(t.TempDir(), "planner.json")), obs)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	_, err := store.Get(ctx, "k")
	require.NoError(t, err)
	_, err = store.Get(ctx, "missing")
	require.Error(t, err)
	require.NoError(t, store.Remove(ctx, "k"))

	assert.Equal(t, []string{"set", "get", "get", "remove"}, obs.operations)
	assert.Equal(t, 1, obs.failures)
}

func TestInstrumentNilObserverIsPassThrough(t *testing.T) {
	inner := NewFileStore(filepath.Join(t.TempDir(), "planner.json"))
	assert.Equal(t, Store(inner), Instrument(inner, nil))
}
