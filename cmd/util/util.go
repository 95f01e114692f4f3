package util

import (
	"fmt"
	"github.com/ValentinKolb/storagemap/lib/common"
	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/ValentinKolb/storagemap/lib/storage/bolt"
	"github.com/ValentinKolb/storagemap/lib/storage/memory"
	"github.com/ValentinKolb/storagemap/lib/storage/metered"
	"github.com/ValentinKolb/storagemap/lib/storage/sqlite"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// MetricsPrefix is the name prefix of all storage metrics
	MetricsPrefix = "smap_storage"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStorageFlags adds the storage selection flags to a command
func SetupStorageFlags(cmd *cobra.Command) {
	key := "backend"
	cmd.PersistentFlags().String(key, string(common.BackendBolt), WrapString("The storage backend to use (memory, bolt, sqlite). The memory backend forgets everything when the command exits"))

	key = "path"
	cmd.PersistentFlags().String(key, "smap.db", WrapString("The database file used by the bolt and sqlite backends"))

	key = "bucket"
	cmd.PersistentFlags().String(key, bolt.DefaultBucket, WrapString("The bolt bucket or sqlite table holding the items"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("The level at which logs will be output (debug, info, warn, error)"))

	key = "metrics"
	cmd.PersistentFlags().Bool(key, false, WrapString("Print the storage metrics in Prometheus text format after the command"))
}

// InitConfig initializes configuration from .env files and environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("smap")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetConfig reads the storage configuration from viper
func GetConfig() (*common.Config, error) {
	backend, err := common.ParseBackend(viper.GetString("backend"))
	if err != nil {
		return nil, err
	}

	conf := &common.Config{
		Backend:      backend,
		Path:         viper.GetString("path"),
		Bucket:       viper.GetString("bucket"),
		LogLevel:     viper.GetString("log-level"),
		PrintMetrics: viper.GetBool("metrics"),
	}
	if _, err := common.ParseLogLevel(conf.LogLevel); err != nil {
		return nil, err
	}
	return conf, nil
}

// OpenStorage creates the configured backend wrapped in a metered.Storage.
// The caller must Close the returned storage.
func OpenStorage(conf *common.Config) (*metered.Storage, error) {
	var inner storage.IStorage

	switch conf.Backend {
	case common.BackendMemory:
		inner = memory.NewMemoryStorage()
	case common.BackendBolt:
		s, err := bolt.Open(conf.Path, bolt.Options{Bucket: conf.Bucket})
		if err != nil {
			return nil, err
		}
		inner = s
	case common.BackendSQLite:
		s, err := sqlite.Open(conf.Path, conf.Bucket)
		if err != nil {
			return nil, err
		}
		inner = s
	default:
		return nil, fmt.Errorf("invalid backend %q", conf.Backend)
	}

	return metered.New(inner, MetricsPrefix), nil
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
