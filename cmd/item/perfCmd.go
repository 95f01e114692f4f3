package item

import (
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/storagemap/cmd/util"
	"github.com/ValentinKolb/storagemap/lib/common"
	"github.com/ValentinKolb/storagemap/lib/storagemap"
	"github.com/ValentinKolb/storagemap/lib/validate"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the storage map",
		Long:    "Runs parallel benchmarks of every storage map operation against the configured backend",
		RunE:    withStorage(run),
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

// perfResult is a benchmark result together with the latencies of the single operations
type perfResult struct {
	bench   testing.BenchmarkResult
	latency gometrics.Timer
}

var perfPercentiles = []float64{0.5, 0.99}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = max(viper.GetInt("keys"), 1)
	perfNumThreads = max(viper.GetInt("threads"), 1)
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Performance testing tool for the storage map")

	// Print configuration
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintln(out, conf.String())
	fmt.Fprintf(out, "Threads: %d\n", perfNumThreads)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "starting tests...")

	// Create results map
	results := make(map[string]perfResult)
	record := func(test string, r perfResult) {
		results[test] = r
		printResult(out, test, r)
	}

	// prepare values
	smallValue := map[string]any{"value": "test"}
	largeValue := map[string]any{"value": strings.Repeat("x", perfLargeValueSizeKB*1024)}

	record("set", benchmark("set", nil, func(key string) error {
		if f, ok := sm.SetItem(key, smallValue).Failure(); ok {
			return f
		}
		return nil
	}))

	record("set-large", benchmark("set-large", nil, func(key string) error {
		if f, ok := sm.SetItem(key, largeValue).Failure(); ok {
			return f
		}
		return nil
	}))

	record("get", benchmark("get", seed(smallValue), func(key string) error {
		if f, ok := storagemap.GetItem(sm, key, validate.Object()).Failure(); ok {
			return f
		}
		return nil
	}))

	record("get-miss", benchmark("get-miss", nil, func(key string) error {
		f, ok := storagemap.GetItem(sm, key, validate.Any()).Failure()
		if !ok {
			return fmt.Errorf("key %q unexpectedly exists", key)
		}
		if f.Kind != storagemap.KindKeyNotExist {
			return f
		}
		return nil
	}))

	record("remove", benchmark("remove", seed(smallValue), func(key string) error {
		if f, ok := sm.RemoveItem(key).Failure(); ok {
			return f
		}
		return nil
	}))

	record("mixed", benchmark("mixed", seed(smallValue), func(key string) error {
		if f, ok := sm.SetItem(key, smallValue).Failure(); ok {
			return f
		}
		if f, ok := storagemap.GetItem(sm, key, validate.Object()).Failure(); ok {
			// a concurrent remove may win the race for the key
			if f.Kind != storagemap.KindKeyNotExist {
				return f
			}
		}
		if f, ok := sm.RemoveItem(key).Failure(); ok {
			return f
		}
		return nil
	}))

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, conf); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Fprintln(out, "Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// benchmark runs op in parallel over the key space of the test. If prepare is not nil it is called
// with the key iterator before the timer starts.
func benchmark(test string, prepare func(iter func(func(string))), op func(key string) error) perfResult {
	latency := gometrics.NewTimer()

	bench := testing.Benchmark(func(b *testing.B) {
		if shouldSkip(test) {
			return
		}

		// prepare keys
		getKey, iter := getKeys(test)
		if prepare != nil {
			prepare(iter)
		}

		// cleanup
		b.Cleanup(func() {
			iter(func(k string) {
				if f, ok := sm.RemoveItem(k).Failure(); ok {
					log.Printf("(%s) - error deleting key: %v\n", test, f)
				}
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				if err := op(getKey(counter)); err != nil {
					log.Printf("(%s) - %v\n", test, err)
				}
				latency.UpdateSince(start)
				counter++
			}
		})
	})

	return perfResult{bench: bench, latency: latency}
}

// seed returns a prepare function writing value to every key
func seed(value any) func(iter func(func(string))) {
	return func(iter func(func(string))) {
		iter(func(k string) {
			if f, ok := sm.SetItem(k, value).Failure(); ok {
				log.Printf("error seeding key: %v\n", f)
			}
		})
	}
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == strings.TrimSpace(skip) {
			return true
		}
	}
	return false
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(w io.Writer, test string, r perfResult) {
	if r.bench.NsPerOp() == 0 {
		fmt.Fprintf(w, "%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(r.bench.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)
	ps := r.latency.Percentiles(perfPercentiles)

	// Print the formatted result
	fmt.Fprintf(w, "%-20s%.0fns/op (%s/op)\t%.0f ops/sec\tp50=%s p99=%s\n",
		test, nsPerOp, time.Duration(nsPerOp), opsPerSec, time.Duration(ps[0]), time.Duration(ps[1]))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]perfResult, config *common.Config) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "P50Ns", "P99Ns", "Skipped",
		"Backend", "Path", "Bucket",
		"Threads", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, r := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if r.bench.NsPerOp() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(r.bench.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}
		ps := r.latency.Percentiles(perfPercentiles)

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			fmt.Sprintf("%.0f", ps[0]),
			fmt.Sprintf("%.0f", ps[1]),
			skipped,
			string(config.Backend),
			config.Path,
			config.Bucket,
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
