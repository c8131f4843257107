package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// StorageKey is the namespaced key the favorite set is stored under.
const StorageKey = "buyora:favorites"

// KV is the string-keyed storage the adapter persists through.
// Implemented by MemoryKV, store.Store (SQLite) and store.BadgerStore.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Store loads and saves the favorite set. Neither method reports failure:
// Load falls back to an empty set and Save drops failed writes.
type Store interface {
	Load(ctx context.Context) *Set
	Save(ctx context.Context, favorites *Set)
}

// Adapter implements Store over a KV.
type Adapter struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithKey overrides StorageKey.
func WithKey(key string) AdapterOption {
	return func(a *Adapter) {
		a.key = key
	}
}

// NewAdapter creates an adapter persisting to kv.
func NewAdapter(kv KV, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		kv:     kv,
		key:    StorageKey,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads the persisted set. It never fails; anything unreadable loads
// as an empty set.
func (a *Adapter) Load(ctx context.Context) *Set {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		a.logger.Warn("favorites read failed, starting empty", "key", a.key, "error", err)
		return NewSet()
	}
	if !ok || raw == "" {
		return NewSet()
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		a.logger.Warn("favorites data is not JSON, starting empty", "key", a.key, "error", err)
		return NewSet()
	}

	items, ok := parsed.([]any)
	if !ok {
		a.logger.Warn("favorites data is not an array, starting empty", "key", a.key)
		return NewSet()
	}

	set := NewSet()
	for _, item := range items {
		n, ok := item.(float64)
		if !ok || n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			a.logger.Debug("skipping non-integer favorite", "key", a.key, "value", item)
			continue
		}
		set.add(int64(n))
	}
	return set
}

// Save writes the set as a JSON array. Failures are logged and dropped;
// there are no retries.
func (a *Adapter) Save(ctx context.Context, favorites *Set) {
	data, err := json.Marshal(favorites.IDs())
	if err != nil {
		a.logger.Warn("favorites encode failed", "key", a.key, "error", err)
		return
	}
	if err := a.kv.Put(ctx, a.key, string(data)); err != nil {
		a.logger.Warn("favorites write failed, keeping in memory only", "key", a.key, "error", err)
	}
}

// Clear removes the persisted set. Unlike Save it reports failure, since
// it is only called on an explicit request.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.kv.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}
