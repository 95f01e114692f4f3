// Package validate provides ready-made validators for storagemap.GetItem.
//
// Kind validators (Any, String, Number, Bool, Object, Array, Null) check the JSON kind
// of the decoded value and reject mismatches with a *TypeError. Decode converts the
// decoded value into a Go struct through mapstructure using the struct's json tags.
// Check adds a predicate after any validator.
//
//	r := storagemap.GetItem(m, "settings", validate.Decode[Settings]())
//
//	positive := validate.Check(validate.Number(), func(n float64) error {
//		if n <= 0 {
//			return errors.New("must be positive")
//		}
//		return nil
//	})
package validate
