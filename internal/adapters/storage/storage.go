package storage

import (
	"fmt"

	"github.com/xvierd/focus-cli/internal/ports"
)

// Supported storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open returns the storage for the named driver. dbPath is only used by sqlite.
func Open(driver, dbPath string) (ports.Storage, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return New(dbPath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q: must be memory or sqlite", driver)
	}
}
