// Package result provides a generic two-variant outcome type used in place of
// (value, error) pairs where the failure itself is structured data.
//
// A Result[S, F] is either a success carrying an S or a failure carrying an F.
// The variant is reported by Tag and both payloads are reached through
// accessors that also report whether the variant matched:
//
//	r := result.Success[int, string](42)
//	if v, ok := r.Success(); ok {
//		fmt.Println(v) // 42
//	}
//
// Match folds a result into one value, Unwrap converts a result whose failure
// type is an error back into the conventional Go pair:
//
//	value, err := result.Unwrap(r)
//
// Results encode to JSON as {"tag":"success","success":...} or
// {"tag":"failure","failure":...}. The payloads are encoded with their own JSON
// encoding, so a failure payload holding a bare error value should implement
// json.Marshaler to be meaningful on the wire.
package result
