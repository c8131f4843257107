package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrStorageUnavailable is returned by FlakyKV when a failure is injected.
var ErrStorageUnavailable = errors.New("storage unavailable")

// FlakyKV is an in-memory favorites.KV with injectable failures, modelling
// storage that is full, disabled, or corrupted.
//
// Thread-safety: all methods are safe for concurrent use.
type FlakyKV struct {
	mu      sync.Mutex
	values  map[string]string
	failGet bool
	failPut bool
	gets    int
	puts    int
}

// NewFlakyKV creates a KV that works until told otherwise.
func NewFlakyKV() *FlakyKV {
	return &FlakyKV{values: make(map[string]string)}
}

// Seed stores a raw value without counting it as a Put.
func (k *FlakyKV) Seed(key, value string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[key] = value
}

// FailReads makes every Get return ErrStorageUnavailable.
func (k *FlakyKV) FailReads(fail bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.failGet = fail
}

// FailWrites makes every Put and Delete return ErrStorageUnavailable without storing.
func (k *FlakyKV) FailWrites(fail bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.failPut = fail
}

// Get implements favorites.KV.
func (k *FlakyKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.gets++
	if k.failGet {
		return "", false, ErrStorageUnavailable
	}
	v, ok := k.values[key]
	return v, ok, nil
}

// Put implements favorites.KV.
func (k *FlakyKV) Put(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.puts++
	if k.failPut {
		return ErrStorageUnavailable
	}
	k.values[key] = value
	return nil
}

// Delete implements favorites.KV. It fails along with writes.
func (k *FlakyKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.failPut {
		return ErrStorageUnavailable
	}
	delete(k.values, key)
	return nil
}

// Value returns the stored value for key.
func (k *FlakyKV) Value(key string) (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.values[key]
	return v, ok
}

// Puts returns the number of Put calls, failed ones included.
func (k *FlakyKV) Puts() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.puts
}

// Gets returns the number of Get calls.
func (k *FlakyKV) Gets() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.gets
}
