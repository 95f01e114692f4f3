package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Backend configuration
// --------------------------------------------------------------------------

// Backend names the storage implementation the CLI binds the façade to.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend validates a backend name.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendMemory, BackendBolt, BackendSQLite:
		return b, nil
	default:
		return "", fmt.Errorf("invalid backend %q (expected memory, bolt or sqlite)", name)
	}
}

// Config holds everything needed to construct a storage and the façade around it.
type Config struct {
	// Backend selects the storage implementation
	Backend Backend
	// Path is the database file for the bolt and sqlite backends
	Path string
	// Bucket is the bolt bucket or sqlite table holding the items
	Bucket string
	// LogLevel is the level of all package loggers (debug, info, warn, error)
	LogLevel string
	// PrintMetrics prints the storage metrics in Prometheus text format after each command
	PrintMetrics bool
}

// String returns a human-readable representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-14s: %s\n", name, value))
	}

	addSection("Storage Configuration")
	addField("Backend", string(c.Backend))
	if c.Backend != BackendMemory {
		addField("Path", c.Path)
		addField("Bucket", c.Bucket)
	}

	addSection("Diagnostics")
	addField("Log Level", c.LogLevel)
	addField("Print Metrics", fmt.Sprintf("%t", c.PrintMetrics))

	return sb.String()
}
