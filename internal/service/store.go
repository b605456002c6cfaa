package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chucky-1/trackers/internal/model"
	"github.com/chucky-1/trackers/internal/repository"
)

// Store owns one ordered collection of records persisted under a single key.
// Records are kept newest first. Every mutation writes the whole collection
// and then publishes the records and their recomputed summary to subscribers.
type Store[T model.Record, S any] struct {
	mu        sync.RWMutex
	key       string
	storage   repository.Storage
	summarize func([]T) S
	records   []T
	listeners []func([]T, S)
}

func NewStore[T model.Record, S any](key string, storage repository.Storage, summarize func([]T) S) *Store[T, S] {
	return &Store[T, S]{
		key:       key,
		storage:   storage,
		summarize: summarize,
	}
}

// Load replaces the in-memory collection with the persisted one. A missing
// key, a storage error or a value that fails to parse all give an empty
// collection.
func (s *Store[T, S]) Load(ctx context.Context) []T {
	records := s.read(ctx)

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	return s.Records()
}

func (s *Store[T, S]) read(ctx context.Context) []T {
	data, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		logrus.Warnf("store %s couldn't load, starting empty: %v", s.key, err)
		return nil
	}
	if !found {
		return nil
	}
	var records []T
	if err = json.Unmarshal([]byte(data), &records); err != nil {
		logrus.Warnf("store %s has corrupted data, starting empty: %v", s.key, err)
		return nil
	}
	return records
}

// Add puts record in front of the collection.
func (s *Store[T, S]) Add(ctx context.Context, record T) error {
	s.mu.Lock()
	s.records = append([]T{record}, s.records...)
	if err := s.persist(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.Publish()
	return nil
}

// Remove deletes the record with id after confirm agrees. It reports whether
// a record was deleted. Nothing is written when the id is absent or the
// confirmation is declined.
func (s *Store[T, S]) Remove(ctx context.Context, id int64, prompt string, confirm Confirmer) (bool, error) {
	if _, ok := s.Get(id); !ok {
		return false, nil
	}
	if !confirm.Confirm(ctx, prompt) {
		return false, nil
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	remaining := make([]T, 0, len(s.records)-1)
	remaining = append(remaining, s.records[:i]...)
	s.records = append(remaining, s.records[i+1:]...)
	if err := s.persist(ctx); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()

	s.Publish()
	return true, nil
}

// Mutate applies fn to the record with id in place and persists the result.
func (s *Store[T, S]) Mutate(ctx context.Context, id int64, fn func(*T)) (bool, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	fn(&s.records[i])
	if err := s.persist(ctx); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()

	s.Publish()
	return true, nil
}

func (s *Store[T, S]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	var zero T
	return zero, false
}

// Records returns a copy of the collection in stored order.
func (s *Store[T, S]) Records() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store[T, S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store[T, S]) Summary() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summarize(s.records)
}

// Subscribe registers fn to be called after every mutation.
func (s *Store[T, S]) Subscribe(fn func([]T, S)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Publish calls every subscriber with the current records and summary.
func (s *Store[T, S]) Publish() {
	s.mu.RLock()
	records := s.snapshot()
	summary := s.summarize(s.records)
	listeners := make([]func([]T, S), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(records, summary)
	}
}

func (s *Store[T, S]) snapshot() []T {
	return append([]T(nil), s.records...)
}

func (s *Store[T, S]) indexOf(id int64) int {
	for i := range s.records {
		if s.records[i].RecordID() == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (s *Store[T, S]) persist(ctx context.Context) error {
	records := s.records
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("store %s couldn't marshal records: %v", s.key, err)
	}
	if err = s.storage.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("store %s couldn't persist: %w", s.key, err)
	}
	return nil
}
