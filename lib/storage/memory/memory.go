package memory

import (
	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/puzpuzpuz/xsync/v3"
)

type memoryStorage struct {
	data *xsync.MapOf[string, string]
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() storage.IStorage {
	return &memoryStorage{
		data: xsync.NewMapOf[string, string](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see storage/interface.go)
// --------------------------------------------------------------------------

func (m *memoryStorage) SetItem(key, value string) error {
	m.data.Store(key, value)
	return nil
}

func (m *memoryStorage) GetItem(key string) (string, bool, error) {
	value, ok := m.data.Load(key)
	return value, ok, nil
}

func (m *memoryStorage) RemoveItem(key string) error {
	m.data.Delete(key)
	return nil
}

func (m *memoryStorage) Clear() error {
	m.data.Clear()
	return nil
}

// Len returns the number of stored keys.
func (m *memoryStorage) Len() int {
	return m.data.Size()
}
