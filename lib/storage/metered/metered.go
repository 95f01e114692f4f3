package metered

import (
	"fmt"
	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/VictoriaMetrics/metrics"
	"io"
	"time"
)

// Operation names used as the "op" label.
const (
	OpSet    = "set"
	OpGet    = "get"
	OpRemove = "remove"
	OpClear  = "clear"
)

type opMetrics struct {
	calls    *metrics.Counter
	errors   *metrics.Counter
	duration *metrics.Histogram
}

// Storage wraps a storage.IStorage and records, per operation, the number of calls,
// the number of failed calls and the call duration. GetItem additionally counts misses.
type Storage struct {
	inner  storage.IStorage
	set    *metrics.Set
	ops    map[string]*opMetrics
	misses *metrics.Counter
}

// New wraps inner. All metric names start with prefix (e.g. "storagemap_storage").
// Metrics are kept in a private metrics.Set, so several wrapped storages do not collide.
func New(inner storage.IStorage, prefix string) *Storage {
	s := &Storage{
		inner: inner,
		set:   metrics.NewSet(),
		ops:   make(map[string]*opMetrics, 4),
	}
	for _, op := range []string{OpSet, OpGet, OpRemove, OpClear} {
		s.ops[op] = &opMetrics{
			calls:    s.set.NewCounter(fmt.Sprintf(`%s_calls_total{op=%q}`, prefix, op)),
			errors:   s.set.NewCounter(fmt.Sprintf(`%s_errors_total{op=%q}`, prefix, op)),
			duration: s.set.NewHistogram(fmt.Sprintf(`%s_duration_seconds{op=%q}`, prefix, op)),
		}
	}
	s.misses = s.set.NewCounter(prefix + "_get_misses_total")
	return s
}

// record is deferred by every operation. errp points at the operation's named error result.
// A panic of the wrapped storage counts as an error and is re-raised.
func (s *Storage) record(op string, start time.Time, errp *error) {
	rec := recover()

	m := s.ops[op]
	m.calls.Inc()
	if *errp != nil || rec != nil {
		m.errors.Inc()
	}
	m.duration.UpdateDuration(start)

	if rec != nil {
		panic(rec)
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see storage/interface.go)
// --------------------------------------------------------------------------

func (s *Storage) SetItem(key, value string) (err error) {
	defer s.record(OpSet, time.Now(), &err)
	return s.inner.SetItem(key, value)
}

func (s *Storage) GetItem(key string) (value string, found bool, err error) {
	defer s.record(OpGet, time.Now(), &err)
	value, found, err = s.inner.GetItem(key)
	if err == nil && !found {
		s.misses.Inc()
	}
	return value, found, err
}

func (s *Storage) RemoveItem(key string) (err error) {
	defer s.record(OpRemove, time.Now(), &err)
	return s.inner.RemoveItem(key)
}

func (s *Storage) Clear() (err error) {
	defer s.record(OpClear, time.Now(), &err)
	return s.inner.Clear()
}

// Close closes the wrapped storage if it can be closed.
func (s *Storage) Close() error {
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Metrics access
// --------------------------------------------------------------------------

// Calls returns how often op was called.
func (s *Storage) Calls(op string) uint64 {
	if m, ok := s.ops[op]; ok {
		return m.calls.Get()
	}
	return 0
}

// Errors returns how often op failed.
func (s *Storage) Errors(op string) uint64 {
	if m, ok := s.ops[op]; ok {
		return m.errors.Get()
	}
	return 0
}

// Misses returns how often GetItem reported a missing key.
func (s *Storage) Misses() uint64 {
	return s.misses.Get()
}

// WritePrometheus writes all metrics in Prometheus text exposition format to w.
func (s *Storage) WritePrometheus(w io.Writer) {
	s.set.WritePrometheus(w)
}
