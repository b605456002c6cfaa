package repository

import (
	"context"
	"sync"
)

// LocalStorage keeps values in process memory.
type LocalStorage struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: make(map[string]string),
	}
}

func (l *LocalStorage) Get(_ context.Context, key string) (string, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.m[key]
	return v, ok, nil
}

func (l *LocalStorage) Set(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[key] = value
	return nil
}
