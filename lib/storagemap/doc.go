// Package storagemap wraps a minimal string-keyed storage (storage.IStorage) with
// three guarantees the raw surface lacks:
//
//   - values are transparently encoded to and decoded from JSON
//   - every failure is returned as a typed result.Result failure, never as a panic
//     or a bare error
//   - reads take a validator, so the type of a retrieved value is established by
//     the caller instead of being assumed
//
// Key Components:
//
//   - StorageMap: the façade. It is created once with New and exposes SetItem,
//     RemoveItem and Clear as methods. Reading needs the validator's type
//     parameters, so it is the package level function GetItem.
//
//   - Validator: func(any) result.Result[S, F]. Ready-made validators live in the
//     "github.com/ValentinKolb/storagemap/lib/validate" package.
//
//   - Failure payloads: WriteError, ReadError, RemoveError and ClearError. Each
//     carries a Kind and exactly one cause field matching that kind. All of them
//     implement error, so errors.Is and errors.As reach the cause:
//
//     KindStorage      the storage returned an error or panicked
//     KindKeyNotExist  GetItem found no value for the key (cause: ErrKeyNotExist)
//     KindMap          the stored text is not valid JSON, or the validator panicked
//     KindValidation   the validator returned a failure
//     KindEncode       SetItem got a value encoding/json cannot encode
//
//     Payloads encode to JSON as {"kind":"StorageError","key":"k","cause":"..."},
//     with error causes reduced to their message.
//
//   - Item: a StorageMap bound to one validator, created with Bind.
//
// Ordering:
//
//	GetItem stops at the first failing stage. A storage failure wins over a missing
//	key, a missing key over a decode or validator failure, and those over a
//	validation rejection.
//
// Usage Example:
//
//	m := storagemap.New(memory.NewMemoryStorage())
//
//	m.SetItem("user", map[string]any{"name": "Ada"})
//
//	r := storagemap.GetItem(m, "user", validate.Object())
//	if user, ok := r.Success(); ok {
//		fmt.Println(user["name"])
//	} else if f, _ := r.Failure(); f.Kind == storagemap.KindKeyNotExist {
//		fmt.Println("no user stored")
//	}
//
// Thread Safety:
//
//	The façade has no internal state and performs no locking. It may be shared
//	between goroutines as long as the wrapped storage may.
package storagemap
