package storagemap

import (
	"encoding/json"
	"github.com/ValentinKolb/storagemap/lib/common"
	"github.com/ValentinKolb/storagemap/lib/result"
	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger(common.LoggerStorageMap)

// Validator turns a freshly decoded value into a typed value or rejects it.
// The decoded value is whatever encoding/json produces for an `any` target:
// nil, bool, float64, string, []any or map[string]any.
// A validator that panics is reported as a MapError by GetItem.
type Validator[S, F any] func(value any) result.Result[S, F]

// StorageMap stores JSON encoded values in an underlying storage.IStorage and reports every
// failure as a result.Result instead of an error or a panic.
//
// Thread-safety: StorageMap holds no state besides the storage it wraps. It is safe for
// concurrent use exactly when the storage is.
type StorageMap struct {
	storage storage.IStorage
}

// New creates a StorageMap bound to the given storage for its entire lifetime.
// It panics if s is nil.
func New(s storage.IStorage) *StorageMap {
	if s == nil {
		panic("storagemap: nil storage")
	}
	return &StorageMap{storage: s}
}

// Storage returns the underlying storage.
func (m *StorageMap) Storage() storage.IStorage {
	return m.storage
}

// --------------------------------------------------------------------------
// Operations
// --------------------------------------------------------------------------

// SetItem encodes value as JSON and stores it under key.
//
// The failure payload has kind KindEncode if value cannot be encoded (the storage is not
// called in that case) and KindStorage if the storage failed.
func (m *StorageMap) SetItem(key string, value any) result.Result[result.Unit, *WriteError] {
	encoded, err := json.Marshal(value)
	if err != nil {
		plog.Debugf("set %q: encode failed: %v", key, err)
		return result.Failure[result.Unit](&WriteError{Kind: KindEncode, Key: key, EncodeError: err})
	}

	if err := guard(func() error {
		return m.storage.SetItem(key, string(encoded))
	}); err != nil {
		plog.Debugf("set %q: storage failed: %v", key, err)
		return result.Failure[result.Unit](&WriteError{Kind: KindStorage, Key: key, StorageError: err})
	}

	return result.Success[result.Unit, *WriteError](result.Unit{})
}

// GetItem fetches the text stored under key, decodes it as JSON and passes the decoded value
// to validate. The first failing stage decides the failure kind:
//
//  1. the storage failed -> KindStorage
//  2. the key does not exist -> KindKeyNotExist
//  3. decoding failed or validate panicked -> KindMap
//  4. validate returned a failure -> KindValidation
//
// Otherwise the success payload of validate is returned. GetItem panics if validate is nil.
func GetItem[S, F any](m *StorageMap, key string, validate Validator[S, F]) result.Result[S, *ReadError[F]] {
	if validate == nil {
		panic("storagemap: nil validator")
	}

	var (
		text  string
		found bool
	)
	if err := guard(func() (err error) {
		text, found, err = m.storage.GetItem(key)
		return err
	}); err != nil {
		plog.Debugf("get %q: storage failed: %v", key, err)
		return result.Failure[S](&ReadError[F]{Kind: KindStorage, Key: key, StorageError: err})
	}

	if !found {
		plog.Debugf("get %q: key does not exist", key)
		return result.Failure[S](&ReadError[F]{Kind: KindKeyNotExist, Key: key})
	}

	var validated result.Result[S, F]
	if err := guard(func() error {
		var decoded any
		if err := json.Unmarshal([]byte(text), &decoded); err != nil {
			return err
		}
		validated = validate(decoded)
		return nil
	}); err != nil {
		plog.Debugf("get %q: map failed: %v", key, err)
		return result.Failure[S](&ReadError[F]{Kind: KindMap, Key: key, MapError: err})
	}

	if rejected, failed := validated.Failure(); failed {
		plog.Debugf("get %q: validation failed: %v", key, rejected)
		return result.Failure[S](&ReadError[F]{Kind: KindValidation, Key: key, ValidationError: rejected})
	}

	value, _ := validated.Success()
	return result.Success[S, *ReadError[F]](value)
}

// RemoveItem removes key from the storage. Whether removing a missing key fails is up to
// the storage.
func (m *StorageMap) RemoveItem(key string) result.Result[result.Unit, *RemoveError] {
	if err := guard(func() error {
		return m.storage.RemoveItem(key)
	}); err != nil {
		plog.Debugf("remove %q: storage failed: %v", key, err)
		return result.Failure[result.Unit](&RemoveError{Key: key, StorageError: err})
	}
	return result.Success[result.Unit, *RemoveError](result.Unit{})
}

// Clear removes every key from the storage.
func (m *StorageMap) Clear() result.Result[result.Unit, *ClearError] {
	if err := guard(m.storage.Clear); err != nil {
		plog.Debugf("clear: storage failed: %v", err)
		return result.Failure[result.Unit](&ClearError{StorageError: err})
	}
	return result.Success[result.Unit, *ClearError](result.Unit{})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// guard calls fn and returns its error. A panic inside fn is recovered and returned as an
// error: error values are returned as they are, anything else is wrapped in a PanicError.
func guard(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if recErr, ok := rec.(error); ok {
				err = recErr
			} else {
				err = &PanicError{Value: rec}
			}
		}
	}()
	return fn()
}
