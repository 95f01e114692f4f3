package storagemap

import (
	"encoding/json"
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Failure Kinds
// --------------------------------------------------------------------------

// Kind classifies why an operation failed. On the read path the kinds are listed
// in precedence order: a storage failure hides everything after it.
type Kind uint8

const (
	KindStorage     Kind = iota + 1 // the underlying storage primitive failed
	KindKeyNotExist                 // the key is not present in the storage
	KindMap                         // decoding the stored text or running the validator failed
	KindValidation                  // the validator rejected the decoded value
	KindEncode                      // the value passed to SetItem could not be encoded
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "StorageError"
	case KindKeyNotExist:
		return "KeyNotExistError"
	case KindMap:
		return "MapError"
	case KindValidation:
		return "ValidationError"
	case KindEncode:
		return "EncodeError"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by its name, e.g. "StorageError".
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ErrKeyNotExist is the cause reported by a ReadError of kind KindKeyNotExist.
var ErrKeyNotExist = errors.New("storagemap: key does not exist")

// PanicError carries a recovered panic value that was not itself an error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// --------------------------------------------------------------------------
// Failure Payloads
// --------------------------------------------------------------------------

// WriteError is the failure payload of SetItem.
type WriteError struct {
	Kind Kind   // KindStorage or KindEncode
	Key  string // the key that was written
	// StorageError is the error raised by the storage (KindStorage only)
	StorageError error
	// EncodeError is the error returned by the JSON encoder (KindEncode only)
	EncodeError error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storagemap: write %q: %s: %v", e.Key, e.Kind, e.Unwrap())
}

func (e *WriteError) Unwrap() error {
	if e.Kind == KindEncode {
		return e.EncodeError
	}
	return e.StorageError
}

// ReadError is the failure payload of GetItem. V is the failure type of the validator.
type ReadError[V any] struct {
	Kind Kind   // one of KindStorage, KindKeyNotExist, KindMap, KindValidation
	Key  string // the key that was read
	// StorageError is the error raised by the storage (KindStorage only)
	StorageError error
	// MapError is the decode error or the error raised by the validator (KindMap only)
	MapError error
	// ValidationError is the validator's failure payload (KindValidation only)
	ValidationError V
}

func (e *ReadError[V]) Error() string {
	if e.Kind == KindValidation {
		return fmt.Sprintf("storagemap: read %q: %s: %v", e.Key, e.Kind, e.ValidationError)
	}
	return fmt.Sprintf("storagemap: read %q: %s: %v", e.Key, e.Kind, e.Unwrap())
}

// Unwrap returns the cause of the failure. For KindValidation the validator's payload is
// returned when it is an error, nil otherwise.
func (e *ReadError[V]) Unwrap() error {
	switch e.Kind {
	case KindStorage:
		return e.StorageError
	case KindKeyNotExist:
		return ErrKeyNotExist
	case KindMap:
		return e.MapError
	case KindValidation:
		if err, ok := any(e.ValidationError).(error); ok {
			return err
		}
	}
	return nil
}

// RemoveError is the failure payload of RemoveItem.
type RemoveError struct {
	Key          string
	StorageError error
}

func (e *RemoveError) Error() string {
	return fmt.Sprintf("storagemap: remove %q: %s: %v", e.Key, KindStorage, e.StorageError)
}

func (e *RemoveError) Unwrap() error { return e.StorageError }

// ClearError is the failure payload of Clear. Clear is not scoped to a key, so there is none.
type ClearError struct {
	StorageError error
}

func (e *ClearError) Error() string {
	return fmt.Sprintf("storagemap: clear: %s: %v", KindStorage, e.StorageError)
}

func (e *ClearError) Unwrap() error { return e.StorageError }

// --------------------------------------------------------------------------
// JSON encoding
// --------------------------------------------------------------------------

// jsonFailure is the JSON form shared by all failure payloads. Error causes are reduced to
// their message, so the form is for reporting only and is not decoded back into a payload.
type jsonFailure struct {
	Kind  Kind    `json:"kind"`
	Key   *string `json:"key,omitempty"`
	Cause any     `json:"cause,omitempty"`
}

func causeOf(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}

// MarshalJSON encodes the failure as {"kind":...,"key":...,"cause":...}.
func (e *WriteError) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonFailure{Kind: e.Kind, Key: &e.Key, Cause: causeOf(e.Unwrap())})
}

// MarshalJSON encodes the failure as {"kind":...,"key":...,"cause":...}. A validation failure
// whose payload is not an error keeps the payload as its cause.
func (e *ReadError[V]) MarshalJSON() ([]byte, error) {
	out := jsonFailure{Kind: e.Kind, Key: &e.Key, Cause: causeOf(e.Unwrap())}
	if e.Kind == KindValidation {
		if _, isErr := any(e.ValidationError).(error); !isErr {
			out.Cause = e.ValidationError
		}
	}
	return json.Marshal(out)
}

// MarshalJSON encodes the failure as {"kind":"StorageError","key":...,"cause":...}.
func (e *RemoveError) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonFailure{Kind: KindStorage, Key: &e.Key, Cause: causeOf(e.StorageError)})
}

// MarshalJSON encodes the failure as {"kind":"StorageError","cause":...}.
func (e *ClearError) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonFailure{Kind: KindStorage, Cause: causeOf(e.StorageError)})
}
