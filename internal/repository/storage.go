package repository

import (
	"context"
	"errors"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

//go:generate mockery --name=Storage

// Storage is a string key-value store. Values are opaque to the storage.
type Storage interface {
	// Get returns found=false without error when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Namespace prefixes every key with a fixed string, so several owners can
// share one backend without clashing keys.
type Namespace struct {
	prefix  string
	storage Storage
}

func NewNamespace(storage Storage, prefix string) *Namespace {
	return &Namespace{
		prefix:  prefix,
		storage: storage,
	}
}

func (n *Namespace) Get(ctx context.Context, key string) (string, bool, error) {
	return n.storage.Get(ctx, n.prefix+key)
}

func (n *Namespace) Set(ctx context.Context, key, value string) error {
	return n.storage.Set(ctx, n.prefix+key, value)
}
