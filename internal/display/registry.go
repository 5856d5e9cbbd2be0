package display

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages backend drivers and handles platform detection
type Registry struct {
	drivers []Driver
	mu      sync.RWMutex
}

var (
	globalRegistry = &Registry{
		drivers: make([]Driver, 0),
	}
)

// Register adds a driver to the global registry.
// This is typically called from init() functions in backend packages.
func Register(driver Driver) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.drivers = append(globalRegistry.drivers, driver)
}

// Detect returns the available driver with the best priority, skipping
// drivers that must be selected explicitly
func Detect() (Driver, error) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	for _, d := range sorted(globalRegistry.drivers) {
		if d.Info().Explicit {
			continue
		}
		if d.IsAvailable() {
			return d, nil
		}
	}

	return nil, fmt.Errorf("no compatible automation backend detected (tried %d drivers)", len(globalRegistry.drivers))
}

// Lookup returns the driver registered under name
func Lookup(name string) (Driver, error) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	for _, d := range globalRegistry.drivers {
		if d.Info().Name == name {
			return d, nil
		}
	}

	return nil, fmt.Errorf("unknown automation backend %q", name)
}

// Drivers returns all registered drivers in priority order
func Drivers() []Driver {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return sorted(globalRegistry.drivers)
}

// ClearDrivers removes all registered drivers (primarily for testing)
func ClearDrivers() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.drivers = make([]Driver, 0)
}

func sorted(drivers []Driver) []Driver {
	out := make([]Driver, len(drivers))
	copy(out, drivers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Info().Priority < out[j].Info().Priority
	})
	return out
}
