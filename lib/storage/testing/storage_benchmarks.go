package testing

import (
	"strconv"
	"testing"

	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/ValentinKolb/storagemap/lib/storagemap"
	"github.com/ValentinKolb/storagemap/lib/validate"
)

// RunStorageBenchmarks runs the standard benchmarks for a storage.IStorage implementation,
// once against the raw storage and once through the storagemap façade.
func RunStorageBenchmarks(b *testing.B, name string, factory storage.Factory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Set", func(b *testing.B) {
			benchmarkSet(b, factory())
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, factory())
		})

		b.Run("StorageMapSet", func(b *testing.B) {
			benchmarkStorageMapSet(b, factory())
		})

		b.Run("StorageMapGet", func(b *testing.B) {
			benchmarkStorageMapGet(b, factory())
		})
	})
}

const benchKeySpread = 1000

func benchKey(i int) string {
	return "bench-" + strconv.Itoa(i%benchKeySpread)
}

func closeBenchStorage(b *testing.B, s storage.IStorage) {
	if c, ok := s.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			b.Errorf("Close failed: %v", err)
		}
	}
}

func benchmarkSet(b *testing.B, s storage.IStorage) {
	defer closeBenchStorage(b, s)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SetItem(benchKey(i), `{"value":"test"}`); err != nil {
			b.Fatalf("SetItem failed: %v", err)
		}
	}
}

func benchmarkGet(b *testing.B, s storage.IStorage) {
	defer closeBenchStorage(b, s)

	for i := 0; i < benchKeySpread; i++ {
		if err := s.SetItem(benchKey(i), `{"value":"test"}`); err != nil {
			b.Fatalf("SetItem failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := s.GetItem(benchKey(i)); err != nil {
			b.Fatalf("GetItem failed: %v", err)
		}
	}
}

func benchmarkStorageMapSet(b *testing.B, s storage.IStorage) {
	defer closeBenchStorage(b, s)
	m := storagemap.New(s)
	value := map[string]any{"value": "test", "count": 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if r := m.SetItem(benchKey(i), value); r.IsFailure() {
			b.Fatalf("SetItem failed: %v", r)
		}
	}
}

func benchmarkStorageMapGet(b *testing.B, s storage.IStorage) {
	defer closeBenchStorage(b, s)
	m := storagemap.New(s)
	value := map[string]any{"value": "test", "count": 1}

	for i := 0; i < benchKeySpread; i++ {
		if r := m.SetItem(benchKey(i), value); r.IsFailure() {
			b.Fatalf("SetItem failed: %v", r)
		}
	}

	v := validate.Object()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if r := storagemap.GetItem(m, benchKey(i), v); r.IsFailure() {
			b.Fatalf("GetItem failed: %v", r)
		}
	}
}
