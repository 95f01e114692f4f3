package metered

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/ValentinKolb/storagemap/lib/storage/memory"
	storagetesting "github.com/ValentinKolb/storagemap/lib/storage/testing"
	"github.com/ValentinKolb/storagemap/lib/storagemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	storagetesting.RunStorageTests(t, "MeteredStorage", func() storage.IStorage {
		return New(memory.NewMemoryStorage(), "test")
	})
}

func TestCounters(t *testing.T) {
	s := New(memory.NewMemoryStorage(), "test")

	require.NoError(t, s.SetItem("a", "1"))
	require.NoError(t, s.SetItem("b", "2"))
	_, _, _ = s.GetItem("a")
	_, _, _ = s.GetItem("missing")
	require.NoError(t, s.RemoveItem("a"))
	require.NoError(t, s.Clear())

	assert.Equal(t, uint64(2), s.Calls(OpSet))
	assert.Equal(t, uint64(2), s.Calls(OpGet))
	assert.Equal(t, uint64(1), s.Calls(OpRemove))
	assert.Equal(t, uint64(1), s.Calls(OpClear))
	assert.Equal(t, uint64(1), s.Misses())
	assert.Equal(t, uint64(0), s.Errors(OpSet))
	assert.Equal(t, uint64(0), s.Calls("unknown"))
}

func TestErrors(t *testing.T) {
	broken := storagetesting.NewBrokenStorage()
	s := New(broken, "test")

	assert.Equal(t, broken.ErrSet, s.SetItem("a", "1"))
	_, _, err := s.GetItem("a")
	assert.Equal(t, broken.ErrGet, err)
	assert.Equal(t, broken.ErrRemove, s.RemoveItem("a"))
	assert.Equal(t, broken.ErrClear, s.Clear())

	for _, op := range []string{OpSet, OpGet, OpRemove, OpClear} {
		assert.Equal(t, uint64(1), s.Errors(op), op)
	}
	// a failed get is not a miss
	assert.Equal(t, uint64(0), s.Misses())
}

func TestPanicIsCounted(t *testing.T) {
	s := New(&storagetesting.FuncStorage{
		GetFunc: func(string) (string, bool, error) { panic(errors.New("boom")) },
	}, "test")

	assert.PanicsWithError(t, "boom", func() { _, _, _ = s.GetItem("k") })
	assert.Equal(t, uint64(1), s.Calls(OpGet))
	assert.Equal(t, uint64(1), s.Errors(OpGet))
	assert.Equal(t, uint64(0), s.Misses())
}

func TestPanicIsReportedThroughStorageMap(t *testing.T) {
	s := New(&storagetesting.FuncStorage{
		RemoveFunc: func(string) error { panic("boom") },
	}, "test")

	f, failed := storagemap.New(s).RemoveItem("k").Failure()
	require.True(t, failed)
	assert.Equal(t, &storagemap.PanicError{Value: "boom"}, f.StorageError)
	assert.Equal(t, uint64(1), s.Calls(OpRemove))
	assert.Equal(t, uint64(1), s.Errors(OpRemove))
}

func TestWritePrometheus(t *testing.T) {
	s := New(memory.NewMemoryStorage(), "smap")
	require.NoError(t, s.SetItem("a", "1"))

	var buf bytes.Buffer
	s.WritePrometheus(&buf)

	out := buf.String()
	assert.Contains(t, out, `smap_calls_total{op="set"} 1`)
	assert.Contains(t, out, `smap_errors_total{op="get"} 0`)
	assert.Contains(t, out, `smap_get_misses_total 0`)
}
