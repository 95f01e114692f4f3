// Package testing provides standardised tests, benchmarks and fault-injecting
// storages for implementations of the storage.IStorage interface.
//
// The package contains:
//   - RunStorageTests: a conformance suite for the IStorage contract, including a
//     round trip through the storagemap façade
//   - RunStorageBenchmarks: throughput of raw and façade operations
//   - BrokenStorage and FuncStorage: storages that fail on demand, for testing
//     the failure paths of code built on IStorage
//
// Example usage:
//
//	factory := func() storage.IStorage {
//		return NewMyStorage()
//	}
//
//	storagetesting.RunStorageTests(t, "MyStorage", factory)
//	storagetesting.RunStorageBenchmarks(b, "MyStorage", factory)
package testing
