// Package storage defines the primitive key-value surface that the storagemap
// façade is built on.
//
// The package focuses on:
//   - A single interface (IStorage) with exactly four operations: SetItem, GetItem,
//     RemoveItem and Clear
//   - An explicit absent marker: GetItem reports a missing key through its boolean
//     return value, so a stored empty string is never confused with "not found"
//
// Implementations:
//
//	- Memory (memory): a concurrent in-memory map. Data does not survive the process.
//	  Available in the "github.com/ValentinKolb/storagemap/lib/storage/memory" package.
//
//	- Bolt (bolt): a single BoltDB bucket in a file on disk.
//	  Available in the "github.com/ValentinKolb/storagemap/lib/storage/bolt" package.
//
//	- SQLite (sqlite): a single table in a SQLite database file.
//	  Available in the "github.com/ValentinKolb/storagemap/lib/storage/sqlite" package.
//
//	- Metered (metered): a decorator that wraps any IStorage and records call counts,
//	  failures and latencies per operation.
//	  Available in the "github.com/ValentinKolb/storagemap/lib/storage/metered" package.
//
// The shared conformance suite in "github.com/ValentinKolb/storagemap/lib/storage/testing"
// checks that an implementation honours the IStorage contract.
package storage
