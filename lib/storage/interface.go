package storage

import "errors"

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStorage is the minimal string-keyed persistence surface wrapped by the storagemap package.
// Every method may fail by returning an error (or by panicking); callers must not assume
// anything about the kind of error an implementation produces.
type IStorage interface {
	// SetItem stores value under key, overwriting any previous value.
	SetItem(key, value string) (err error)
	// GetItem returns the value stored under key. The boolean return value reports whether
	// the key exists. An existing key may hold the empty string.
	GetItem(key string) (value string, found bool, err error)
	// RemoveItem deletes key. Removing a key that does not exist is not an error.
	RemoveItem(key string) (err error)
	// Clear removes every key.
	Clear() (err error)
}

// Factory creates a new storage instance. It is used where a fresh, empty storage is required
// (tests, benchmarks).
type Factory func() IStorage

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

// ErrClosed is returned by storages that hold external resources after Close was called.
var ErrClosed = errors.New("storage: closed")
