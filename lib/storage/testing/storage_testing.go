package testing

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/ValentinKolb/storagemap/lib/storagemap"
	"github.com/ValentinKolb/storagemap/lib/validate"
)

// RunStorageTests runs the conformance suite for a storage.IStorage implementation.
// The factory must return a new, empty storage on every call.
func RunStorageTests(t *testing.T, name string, factory storage.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("EmptyValue", func(t *testing.T) {
			testEmptyValue(t, factory())
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, factory())
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory())
		})

		t.Run("Concurrent", func(t *testing.T) {
			testConcurrent(t, factory())
		})

		t.Run("StorageMapRoundTrip", func(t *testing.T) {
			testStorageMapRoundTrip(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// closeStorage closes the storage if it holds resources.
func closeStorage(t *testing.T, s storage.IStorage) {
	if c, ok := s.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}
}

func mustSet(t *testing.T, s storage.IStorage, key, value string) {
	t.Helper()
	if err := s.SetItem(key, value); err != nil {
		t.Fatalf("SetItem(%q) failed: %v", key, err)
	}
}

func expectValue(t *testing.T, s storage.IStorage, key, expected string) {
	t.Helper()
	value, found, err := s.GetItem(key)
	if err != nil {
		t.Fatalf("GetItem(%q) failed: %v", key, err)
	}
	if !found {
		t.Errorf("Expected key %q to exist", key)
		return
	}
	if value != expected {
		t.Errorf("Expected value %q for key %q, got %q", expected, key, value)
	}
}

func expectAbsent(t *testing.T, s storage.IStorage, key string) {
	t.Helper()
	_, found, err := s.GetItem(key)
	if err != nil {
		t.Fatalf("GetItem(%q) failed: %v", key, err)
	}
	if found {
		t.Errorf("Expected key %q to be absent", key)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, s storage.IStorage) {
	defer closeStorage(t, s)

	mustSet(t, s, "test-key", "test-value1")
	expectValue(t, s, "test-key", "test-value1")

	mustSet(t, s, "test-key", "test-value2")
	expectValue(t, s, "test-key", "test-value2")

	expectAbsent(t, s, "nonexistent-key")
}

func testEmptyValue(t *testing.T, s storage.IStorage) {
	defer closeStorage(t, s)

	mustSet(t, s, "empty", "")

	value, found, err := s.GetItem("empty")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if !found {
		t.Errorf("A stored empty string must be reported as found")
	}
	if value != "" {
		t.Errorf("Expected empty value, got %q", value)
	}
}

func testRemove(t *testing.T, s storage.IStorage) {
	defer closeStorage(t, s)

	mustSet(t, s, "a", "1")
	mustSet(t, s, "b", "2")

	if err := s.RemoveItem("a"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	expectAbsent(t, s, "a")
	expectValue(t, s, "b", "2")

	if err := s.RemoveItem("a"); err != nil {
		t.Errorf("Removing an absent key must not fail, got %v", err)
	}
	if err := s.RemoveItem("never-set"); err != nil {
		t.Errorf("Removing a never set key must not fail, got %v", err)
	}
}

func testClear(t *testing.T, s storage.IStorage) {
	defer closeStorage(t, s)

	keys := []string{"k1", "k2", "k3"}
	for i, k := range keys {
		mustSet(t, s, k, fmt.Sprintf("v%d", i))
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	for _, k := range keys {
		expectAbsent(t, s, k)
	}

	// the storage stays usable after a clear
	mustSet(t, s, "k1", "again")
	expectValue(t, s, "k1", "again")

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("Clearing an empty storage must not fail, got %v", err)
	}
}

func testEdgeCases(t *testing.T, s storage.IStorage) {
	defer closeStorage(t, s)

	cases := []struct{ key, value string }{
		{"", "empty key"},
		{"spaces in key", "value"},
		{"unicode-ключ-キー", "ünïcödé välüé"},
		{"quote\"key", `{"json": "text with \"quotes\""}`},
		{"newline\nkey", "multi\nline\nvalue"},
		{"very-long-key-" + long(512), long(64 * 1024)},
	}

	for _, c := range cases {
		mustSet(t, s, c.key, c.value)
	}
	for _, c := range cases {
		expectValue(t, s, c.key, c.value)
	}
}

func long(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a' + byte(i%26)
	}
	return string(b)
}

func testConcurrent(t *testing.T, s storage.IStorage) {
	defer closeStorage(t, s)

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker*2)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d-k%d", w, i)
				if err := s.SetItem(key, key); err != nil {
					errs <- err
					continue
				}
				if _, _, err := s.GetItem(key); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent access failed: %v", err)
	}

	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			key := fmt.Sprintf("w%d-k%d", w, i)
			expectValue(t, s, key, key)
		}
	}
}

// testStorageMapRoundTrip checks that values written through the façade come back
// structurally equal when read with a validator accepting everything.
func testStorageMapRoundTrip(t *testing.T, s storage.IStorage) {
	defer closeStorage(t, s)

	m := storagemap.New(s)

	values := map[string]any{
		"number": 1.5,
		"string": "test",
		"bool":   true,
		"null":   nil,
		"array":  []any{1.0, 2.0, 3.0},
		"object": map[string]any{"a": 1.0, "nested": map[string]any{"b": []any{"c"}}},
	}

	for k, v := range values {
		if r := m.SetItem(k, v); r.IsFailure() {
			f, _ := r.Failure()
			t.Fatalf("SetItem(%q) failed: %v", k, f)
		}
	}

	for k, v := range values {
		r := storagemap.GetItem(m, k, validate.Any())
		got, ok := r.Success()
		if !ok {
			f, _ := r.Failure()
			t.Errorf("GetItem(%q) failed: %v", k, f)
			continue
		}
		if !reflect.DeepEqual(v, got) {
			t.Errorf("GetItem(%q) = %#v, want %#v", k, got, v)
		}
	}

	if r := m.Clear(); r.IsFailure() {
		f, _ := r.Failure()
		t.Fatalf("Clear failed: %v", f)
	}
	for k := range values {
		f, failed := storagemap.GetItem(m, k, validate.Any()).Failure()
		if !failed || f.Kind != storagemap.KindKeyNotExist {
			t.Errorf("GetItem(%q) after Clear: expected %s", k, storagemap.KindKeyNotExist)
		}
	}
}
