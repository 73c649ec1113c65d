package kvstore

import (
	"context"
	"time"
)

// Observer receives timing for every store operation.
type Observer interface {
	ObserveStoreOperation(operation string, duration time.Duration, err error)
}

type instrumentedStore struct {
	next Store
	obs  Observer
}

// Instrument wraps a store so every operation is reported to the observer.
// A nil observer returns the store unchanged.
func Instrument(next Store, obs Observer) Store {
	if obs == nil {
		return next
	}
	return &instrumentedStore{next: next, obs: obs}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, key)
	s.obs.ObserveStoreOperation("get", time.Since(start), err)
	return value, err
}

func (s *instrumentedStore) GetList(ctx context.Context, key string) ([]string, error) {
	start := time.Now()
	values, err := s.next.GetList(ctx, key)
	s.obs.ObserveStoreOperation("get_list", time.Since(start), err)
	return values, err
}

func (s *instrumentedStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.obs.ObserveStoreOperation("set", time.Since(start), err)
	return err
}

func (s *instrumentedStore) SetList(ctx context.Context, key string, values []string) error {
	start := time.Now()
	err := s.next.SetList(ctx, key, values)
	s.obs.ObserveStoreOperation("set_list", time.Since(start), err)
	return err
}

func (s *instrumentedStore) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, key)
	s.obs.ObserveStoreOperation("remove", time.Since(start), err)
	return err
}
