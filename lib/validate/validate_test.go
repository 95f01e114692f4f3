package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/ValentinKolb/storagemap/lib/result"
	"github.com/ValentinKolb/storagemap/lib/storage/memory"
	"github.com/ValentinKolb/storagemap/lib/storagemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindValidators(t *testing.T) {
	tests := []struct {
		name     string
		validate func(any) (any, bool)
		accepts  any
		rejects  any
	}{
		{"string", adapt(String()), "hello", 1.0},
		{"number", adapt(Number()), 3.5, "3.5"},
		{"bool", adapt(Bool()), true, "true"},
		{"object", adapt(Object()), map[string]any{"a": 1.0}, []any{1.0}},
		{"array", adapt(Array()), []any{"x"}, map[string]any{}},
		{"null", adapt(Null()), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.validate(tt.accepts)
			assert.True(t, ok, "expected %v to be accepted", tt.accepts)

			_, ok = tt.validate(tt.rejects)
			assert.False(t, ok, "expected %v to be rejected", tt.rejects)
		})
	}
}

func adapt[S, F any](v storagemap.Validator[S, F]) func(any) (any, bool) {
	return func(value any) (any, bool) {
		r := v(value)
		s, ok := r.Success()
		return s, ok
	}
}

func TestTypeError(t *testing.T) {
	r := String()(42.0)

	f, ok := r.Failure()
	require.True(t, ok)
	assert.Equal(t, &TypeError{Expected: "string", Got: "number"}, f)
	assert.Equal(t, "expected string, got number", f.Error())
}

func TestAny(t *testing.T) {
	for _, value := range []any{nil, true, 1.0, "s", []any{}, map[string]any{}} {
		v, ok := Any()(value).Success()
		assert.True(t, ok)
		assert.Equal(t, value, v)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "null", KindOf(nil))
	assert.Equal(t, "bool", KindOf(false))
	assert.Equal(t, "number", KindOf(1.0))
	assert.Equal(t, "string", KindOf(""))
	assert.Equal(t, "array", KindOf([]any{}))
	assert.Equal(t, "object", KindOf(map[string]any{}))
	assert.Equal(t, "int", KindOf(1))
}

type profile struct {
	Name string   `json:"name"`
	Age  int      `json:"age"`
	Tags []string `json:"tags,omitempty"`
}

func TestDecode(t *testing.T) {
	decoded := map[string]any{
		"name": "Ada",
		"age":  36.0,
		"tags": []any{"math", "engines"},
	}

	p, ok := Decode[profile]()(decoded).Success()
	require.True(t, ok)
	assert.Equal(t, profile{Name: "Ada", Age: 36, Tags: []string{"math", "engines"}}, p)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	decoded := map[string]any{"name": "Ada", "email": "ada@example.com"}

	_, ok := Decode[profile]()(decoded).Failure()
	assert.True(t, ok)
}

func TestDecodeRejectsWrongTypes(t *testing.T) {
	decoded := map[string]any{"name": []any{"not", "a", "string"}}

	err, ok := Decode[profile]()(decoded).Failure()
	require.True(t, ok)
	assert.Error(t, err)
}

// Base is exported since mapstructure cannot set fields of an unexported embedded struct.
type Base struct {
	ID string `json:"id"`
}

type withEmbedded struct {
	Base
	Name string `json:"name"`
}

type event struct {
	At time.Time `json:"at"`
}

type counter struct {
	N int `json:"n"`
}

// roundTrip writes value through a storage map and reads it back with Decode.
func roundTrip[T any](t *testing.T, value any) (T, error) {
	t.Helper()

	m := storagemap.New(memory.NewMemoryStorage())
	require.True(t, m.SetItem("k", value).IsSuccess())

	out, err := result.Unwrap(storagemap.GetItem(m, "k", Decode[T]()))
	return out, err
}

func TestDecodeRoundTrip(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		in := withEmbedded{Base: Base{ID: "1"}, Name: "a"}
		out, err := roundTrip[withEmbedded](t, in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("time", func(t *testing.T) {
		in := event{At: time.Date(2024, 5, 17, 12, 30, 0, 500, time.UTC)}
		out, err := roundTrip[event](t, in)
		require.NoError(t, err)
		assert.True(t, in.At.Equal(out.At), "expected %v, got %v", in.At, out.At)
	})

	t.Run("integer", func(t *testing.T) {
		out, err := roundTrip[counter](t, counter{N: -42})
		require.NoError(t, err)
		assert.Equal(t, counter{N: -42}, out)
	})
}

func TestDecodeRejectsFractionalIntegers(t *testing.T) {
	_, err := roundTrip[counter](t, map[string]any{"n": 14.7})

	var readErr *storagemap.ReadError[error]
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, storagemap.KindValidation, readErr.Kind)
	assert.ErrorContains(t, err, "14.7 is not an integer")
}

func TestDecodeRejectsOverflow(t *testing.T) {
	type small struct {
		B uint8 `json:"b"`
	}

	for _, n := range []float64{256, -1} {
		_, ok := Decode[small]()(map[string]any{"b": n}).Failure()
		assert.True(t, ok, "expected %v to be rejected", n)
	}
}

func TestCheck(t *testing.T) {
	errNotPositive := errors.New("must be positive")
	positive := Check(Number(), func(n float64) error {
		if n <= 0 {
			return errNotPositive
		}
		return nil
	})

	v, ok := positive(2.0).Success()
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	err, ok := positive(-1.0).Failure()
	assert.True(t, ok)
	assert.ErrorIs(t, err, errNotPositive)

	err, ok = positive("2").Failure()
	assert.True(t, ok)
	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestByName(t *testing.T) {
	v, err := ByName("object")
	require.NoError(t, err)

	accepted, ok := v(map[string]any{"k": "v"}).Success()
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"k": "v"}, accepted)

	rejected, ok := v("nope").Failure()
	assert.True(t, ok)
	assert.EqualError(t, rejected, "expected object, got string")

	_, err = ByName("date")
	assert.Error(t, err)
}
