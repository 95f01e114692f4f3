package result

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	r := Success[int, string](42)

	assert.Equal(t, TagSuccess, r.Tag())
	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())

	v, ok := r.Success()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	f, ok := r.Failure()
	assert.False(t, ok)
	assert.Empty(t, f)
}

func TestFailure(t *testing.T) {
	r := Failure[int, string]("nope")

	assert.Equal(t, TagFailure, r.Tag())
	assert.True(t, r.IsFailure())

	f, ok := r.Failure()
	assert.True(t, ok)
	assert.Equal(t, "nope", f)

	v, ok := r.Success()
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestZeroValueIsSuccess(t *testing.T) {
	var r Result[string, error]

	assert.Equal(t, TagSuccess, r.Tag())
	v, ok := r.Success()
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMatch(t *testing.T) {
	describe := func(r Result[int, error]) string {
		return Match(r,
			func(v int) string { return "ok:" + strconv.Itoa(v) },
			func(err error) string { return "err:" + err.Error() },
		)
	}

	assert.Equal(t, "ok:7", describe(Success[int, error](7)))
	assert.Equal(t, "err:bad", describe(Failure[int, error](errors.New("bad"))))
}

func TestUnwrap(t *testing.T) {
	v, err := Unwrap(Success[string, error]("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	boom := errors.New("boom")
	v, err = Unwrap(Failure[string, error](boom))
	assert.Same(t, boom, err)
	assert.Equal(t, "", v)
}

func TestString(t *testing.T) {
	assert.Equal(t, "success(1)", Success[int, string](1).String())
	assert.Equal(t, "failure(x)", Failure[int, string]("x").String())
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		result   Result[map[string]int, string]
		expected string
	}{
		{
			name:     "success",
			result:   Success[map[string]int, string](map[string]int{"a": 1}),
			expected: `{"tag":"success","success":{"a":1}}`,
		},
		{
			name:     "failure",
			result:   Failure[map[string]int, string]("not found"),
			expected: `{"tag":"failure","failure":"not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(b))

			var decoded Result[map[string]int, string]
			require.NoError(t, json.Unmarshal(b, &decoded))
			assert.Equal(t, tt.result, decoded)
		})
	}
}

func TestUnmarshalInvalidTag(t *testing.T) {
	var r Result[int, string]
	err := json.Unmarshal([]byte(`{"tag":"maybe"}`), &r)
	assert.Error(t, err)
}
