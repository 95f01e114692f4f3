// Package memory implements storage.IStorage on top of xsync.MapOf, a concurrent
// hash map that shards keys internally so readers never block writers.
//
// Data lives only as long as the process. The storage never fails, which makes it
// the default choice for tests and for caches that need the storagemap guarantees
// without persistence.
//
// Usage Example:
//
//	m := storagemap.New(memory.NewMemoryStorage())
package memory
