package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/storagemap/lib/storage"
	storagetesting "github.com/ValentinKolb/storagemap/lib/storage/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t testing.TB, path, table string) *Storage {
	s, err := Open(path, table)
	require.NoError(t, err)
	return s
}

func Test(t *testing.T) {
	storagetesting.RunStorageTests(t, "SQLiteStorage", func() storage.IStorage {
		return newStorage(t, filepath.Join(t.TempDir(), "test.sqlite"), "")
	})
}

func TestOpenValidation(t *testing.T) {
	_, err := Open("  ", "")
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "test.sqlite"), "items; DROP TABLE x")
	assert.Error(t, err)
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")

	s := newStorage(t, path, "items")
	require.NoError(t, s.SetItem("a", `{"n":1}`))
	require.NoError(t, s.SetItem("a", `{"n":2}`))
	require.NoError(t, s.Close())

	s = newStorage(t, path, "items")
	defer s.Close()

	value, found, err := s.GetItem("a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"n":2}`, value)
}

func TestClearOnlyAffectsOwnTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")

	a := newStorage(t, path, "a")
	require.NoError(t, a.SetItem("key", "from-a"))
	require.NoError(t, a.Close())

	b := newStorage(t, path, "b")
	require.NoError(t, b.SetItem("key", "from-b"))
	require.NoError(t, b.Clear())
	require.NoError(t, b.Close())

	a = newStorage(t, path, "a")
	defer a.Close()
	value, found, err := a.GetItem("key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "from-a", value)
}

func TestClosed(t *testing.T) {
	s := newStorage(t, filepath.Join(t.TempDir(), "test.sqlite"), "")
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.SetItem("k", "v"), storage.ErrClosed)
	_, _, err := s.GetItem("k")
	assert.ErrorIs(t, err, storage.ErrClosed)
}

func Benchmark(b *testing.B) {
	storagetesting.RunStorageBenchmarks(b, "SQLiteStorage", func() storage.IStorage {
		return newStorage(b, filepath.Join(b.TempDir(), "bench.sqlite"), "")
	})
}
