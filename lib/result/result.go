package result

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// Tag is the discriminant of a Result.
type Tag string

const (
	TagSuccess Tag = "success"
	TagFailure Tag = "failure"
)

// Unit is the payload of a success that carries no value.
type Unit struct{}

// --------------------------------------------------------------------------
// Result Type
// --------------------------------------------------------------------------

// Result holds either a success value of type S or a failure value of type F, never both.
// The zero value is a success carrying the zero value of S.
type Result[S, F any] struct {
	failed  bool
	success S
	failure F
}

// Success creates the success variant of a Result.
func Success[S, F any](value S) Result[S, F] {
	return Result[S, F]{success: value}
}

// Failure creates the failure variant of a Result.
func Failure[S, F any](err F) Result[S, F] {
	return Result[S, F]{failed: true, failure: err}
}

// Tag returns which variant the result is.
func (r Result[S, F]) Tag() Tag {
	if r.failed {
		return TagFailure
	}
	return TagSuccess
}

func (r Result[S, F]) IsSuccess() bool { return !r.failed }

func (r Result[S, F]) IsFailure() bool { return r.failed }

// Success returns the success payload. The boolean is false for a failure,
// in which case the returned value is the zero value of S.
func (r Result[S, F]) Success() (value S, ok bool) {
	if r.failed {
		var zero S
		return zero, false
	}
	return r.success, true
}

// Failure returns the failure payload. The boolean is false for a success,
// in which case the returned value is the zero value of F.
func (r Result[S, F]) Failure() (err F, ok bool) {
	if !r.failed {
		var zero F
		return zero, false
	}
	return r.failure, true
}

func (r Result[S, F]) String() string {
	if r.failed {
		return fmt.Sprintf("failure(%+v)", r.failure)
	}
	return fmt.Sprintf("success(%+v)", r.success)
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// Match folds a result into a single value by calling exactly one of the two functions.
func Match[S, F, T any](r Result[S, F], onSuccess func(S) T, onFailure func(F) T) T {
	if r.failed {
		return onFailure(r.failure)
	}
	return onSuccess(r.success)
}

// Unwrap converts a result whose failure payload is an error into the usual (value, error) pair.
func Unwrap[S any, F error](r Result[S, F]) (S, error) {
	if r.failed {
		var zero S
		return zero, r.failure
	}
	return r.success, nil
}

// --------------------------------------------------------------------------
// JSON encoding
// --------------------------------------------------------------------------

type jsonResult[S, F any] struct {
	Tag     Tag `json:"tag"`
	Success *S  `json:"success,omitempty"`
	Failure *F  `json:"failure,omitempty"`
}

// MarshalJSON encodes the result as {"tag":"success","success":...} or {"tag":"failure","failure":...}.
func (r Result[S, F]) MarshalJSON() ([]byte, error) {
	out := jsonResult[S, F]{Tag: r.Tag()}
	if r.failed {
		out.Failure = &r.failure
	} else {
		out.Success = &r.success
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (r *Result[S, F]) UnmarshalJSON(b []byte) error {
	var in jsonResult[S, F]
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Tag {
	case TagSuccess:
		var value S
		if in.Success != nil {
			value = *in.Success
		}
		*r = Success[S, F](value)
	case TagFailure:
		var err F
		if in.Failure != nil {
			err = *in.Failure
		}
		*r = Failure[S, F](err)
	default:
		return fmt.Errorf("result: invalid tag %q", in.Tag)
	}
	return nil
}
