// Package metered provides a storage.IStorage decorator that records per-operation
// call counts, error counts and latency histograms with VictoriaMetrics/metrics.
//
// The metrics are exported in Prometheus text format via WritePrometheus:
//
//	s := metered.New(memory.NewMemoryStorage(), "storagemap_storage")
//	m := storagemap.New(s)
//	...
//	s.WritePrometheus(os.Stdout)
//
// Panics of the wrapped storage are not recovered here; they are counted as a call
// and propagate to the caller (the storagemap façade classifies them).
package metered
