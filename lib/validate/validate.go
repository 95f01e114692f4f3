package validate

import (
	"fmt"
	"math"
	"reflect"
	"github.com/ValentinKolb/storagemap/lib/result"
	"github.com/ValentinKolb/storagemap/lib/storagemap"
	"github.com/go-viper/mapstructure/v2"
)

// TypeError reports that a decoded value has a different JSON kind than expected.
type TypeError struct {
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// KindOf returns the JSON kind of a value produced by encoding/json: null, bool, number,
// string, array or object. Any other Go type is reported by its type name.
func KindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// --------------------------------------------------------------------------
// Kind validators
// --------------------------------------------------------------------------

// Any accepts every decoded value unchanged.
func Any() storagemap.Validator[any, result.Unit] {
	return func(value any) result.Result[any, result.Unit] {
		return result.Success[any, result.Unit](value)
	}
}

// String accepts JSON strings.
func String() storagemap.Validator[string, *TypeError] {
	return kind[string]("string")
}

// Number accepts JSON numbers.
func Number() storagemap.Validator[float64, *TypeError] {
	return kind[float64]("number")
}

// Bool accepts JSON booleans.
func Bool() storagemap.Validator[bool, *TypeError] {
	return kind[bool]("bool")
}

// Object accepts JSON objects.
func Object() storagemap.Validator[map[string]any, *TypeError] {
	return kind[map[string]any]("object")
}

// Array accepts JSON arrays.
func Array() storagemap.Validator[[]any, *TypeError] {
	return kind[[]any]("array")
}

// Null accepts only JSON null.
func Null() storagemap.Validator[result.Unit, *TypeError] {
	return func(value any) result.Result[result.Unit, *TypeError] {
		if value != nil {
			return result.Failure[result.Unit](&TypeError{Expected: "null", Got: KindOf(value)})
		}
		return result.Success[result.Unit, *TypeError](result.Unit{})
	}
}

func kind[T any](name string) storagemap.Validator[T, *TypeError] {
	return func(value any) result.Result[T, *TypeError] {
		typed, ok := value.(T)
		if !ok {
			return result.Failure[T](&TypeError{Expected: name, Got: KindOf(value)})
		}
		return result.Success[T, *TypeError](typed)
	}
}

// --------------------------------------------------------------------------
// Struct decoding
// --------------------------------------------------------------------------

// Decode converts the decoded JSON value into T using the `json` struct tags of T.
// Fields of the stored object that T does not declare are rejected. Embedded structs are
// flattened and encoding.TextUnmarshaler fields (e.g. time.Time) are decoded from strings,
// the way encoding/json writes them.
func Decode[T any]() storagemap.Validator[T, error] {
	return func(value any) result.Result[T, error] {
		var out T
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &out,
			TagName:     "json",
			ErrorUnused: true,
			Squash:      true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				integralHook,
			),
		})
		if err != nil {
			return result.Failure[T](err)
		}
		if err := decoder.Decode(value); err != nil {
			return result.Failure[T](err)
		}
		return result.Success[T, error](out)
	}
}

// integralHook rejects JSON numbers that an integer field cannot hold exactly.
// mapstructure truncates them otherwise.
func integralHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 {
		return data, nil
	}
	f, ok := data.(float64)
	if !ok {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not an integer", f)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 || reflect.Zero(to).OverflowInt(int64(f)) {
			return nil, fmt.Errorf("%v overflows %s", f, to)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not an integer", f)
		}
		if f < 0 || f >= math.MaxUint64 || reflect.Zero(to).OverflowUint(uint64(f)) {
			return nil, fmt.Errorf("%v overflows %s", f, to)
		}
	}
	return data, nil
}

// --------------------------------------------------------------------------
// Combinators
// --------------------------------------------------------------------------

// Check runs pred on the value accepted by v. A non-nil error from pred rejects the value.
func Check[S, F any](v storagemap.Validator[S, F], pred func(S) error) storagemap.Validator[S, error] {
	return func(value any) result.Result[S, error] {
		r := v(value)
		if rejected, failed := r.Failure(); failed {
			if err, ok := any(rejected).(error); ok {
				return result.Failure[S](err)
			}
			return result.Failure[S](fmt.Errorf("%v", rejected))
		}
		accepted, _ := r.Success()
		if err := pred(accepted); err != nil {
			return result.Failure[S](err)
		}
		return result.Success[S, error](accepted)
	}
}

// ByName returns the kind validator with the given name (any, string, number, bool, object,
// array, null). The success value is returned as `any` so callers can pick a validator at runtime.
func ByName(name string) (storagemap.Validator[any, error], error) {
	switch name {
	case "any":
		return erase(Any()), nil
	case "string":
		return erase(String()), nil
	case "number":
		return erase(Number()), nil
	case "bool":
		return erase(Bool()), nil
	case "object":
		return erase(Object()), nil
	case "array":
		return erase(Array()), nil
	case "null":
		return erase(Null()), nil
	default:
		return nil, fmt.Errorf("unknown type %q (expected any, string, number, bool, object, array or null)", name)
	}
}

// erase widens the type parameters of a validator to (any, error).
func erase[S, F any](v storagemap.Validator[S, F]) storagemap.Validator[any, error] {
	return func(value any) result.Result[any, error] {
		r := v(value)
		if rejected, failed := r.Failure(); failed {
			if err, ok := any(rejected).(error); ok {
				return result.Failure[any](err)
			}
			return result.Failure[any](fmt.Errorf("%v", rejected))
		}
		accepted, _ := r.Success()
		return result.Success[any, error](accepted)
	}
}
