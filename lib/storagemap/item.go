package storagemap

import "github.com/ValentinKolb/storagemap/lib/result"

// Item binds a StorageMap to one validator so that call sites reading the same
// type do not repeat it.
type Item[S, F any] struct {
	m        *StorageMap
	validate Validator[S, F]
}

// Bind creates an Item. It panics if validate is nil.
func Bind[S, F any](m *StorageMap, validate Validator[S, F]) Item[S, F] {
	if validate == nil {
		panic("storagemap: nil validator")
	}
	return Item[S, F]{m: m, validate: validate}
}

// Get reads key with the bound validator, see GetItem.
func (i Item[S, F]) Get(key string) result.Result[S, *ReadError[F]] {
	return GetItem(i.m, key, i.validate)
}

// Set writes value under key, see StorageMap.SetItem.
func (i Item[S, F]) Set(key string, value S) result.Result[result.Unit, *WriteError] {
	return i.m.SetItem(key, value)
}

// Remove removes key, see StorageMap.RemoveItem.
func (i Item[S, F]) Remove(key string) result.Result[result.Unit, *RemoveError] {
	return i.m.RemoveItem(key)
}
