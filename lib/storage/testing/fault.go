package testing

import (
	"errors"

	"github.com/ValentinKolb/storagemap/lib/storage"
)

// --------------------------------------------------------------------------
// Broken Storage
// --------------------------------------------------------------------------

// BrokenStorage fails every operation with a fixed error per operation.
type BrokenStorage struct {
	ErrSet    error
	ErrGet    error
	ErrRemove error
	ErrClear  error
}

// NewBrokenStorage creates a storage whose operations fail with "<operation> is broken".
func NewBrokenStorage() *BrokenStorage {
	return &BrokenStorage{
		ErrSet:    errors.New("setItem is broken"),
		ErrGet:    errors.New("getItem is broken"),
		ErrRemove: errors.New("removeItem is broken"),
		ErrClear:  errors.New("clear is broken"),
	}
}

func (b *BrokenStorage) SetItem(string, string) error { return b.ErrSet }

func (b *BrokenStorage) GetItem(string) (string, bool, error) { return "", false, b.ErrGet }

func (b *BrokenStorage) RemoveItem(string) error { return b.ErrRemove }

func (b *BrokenStorage) Clear() error { return b.ErrClear }

// --------------------------------------------------------------------------
// Func Storage
// --------------------------------------------------------------------------

// FuncStorage delegates every operation to the matching function. Operations whose function
// is nil are forwarded to Base, which must then be set.
type FuncStorage struct {
	Base       storage.IStorage
	SetFunc    func(key, value string) error
	GetFunc    func(key string) (string, bool, error)
	RemoveFunc func(key string) error
	ClearFunc  func() error
}

func (f *FuncStorage) SetItem(key, value string) error {
	if f.SetFunc != nil {
		return f.SetFunc(key, value)
	}
	return f.Base.SetItem(key, value)
}

func (f *FuncStorage) GetItem(key string) (string, bool, error) {
	if f.GetFunc != nil {
		return f.GetFunc(key)
	}
	return f.Base.GetItem(key)
}

func (f *FuncStorage) RemoveItem(key string) error {
	if f.RemoveFunc != nil {
		return f.RemoveFunc(key)
	}
	return f.Base.RemoveItem(key)
}

func (f *FuncStorage) Clear() error {
	if f.ClearFunc != nil {
		return f.ClearFunc()
	}
	return f.Base.Clear()
}
