// Package ble provides the radio side of the scanner: the discovery event
// model, the capability interfaces the scan controller consumes, and a
// tinygo bluetooth implementation of them.
package ble

import (
	"context"
	"strings"
	"time"
)

// Connectable is the advertiser's connectable hint. Drivers that cannot
// report it leave it Unknown, which is treated as connectable.
type Connectable int

const (
	ConnectableUnknown Connectable = iota
	ConnectableYes
	ConnectableNo
)

// Admits reports whether the connectable filter lets this value through.
func (c Connectable) Admits() bool {
	return c != ConnectableNo
}

func (c Connectable) String() string {
	switch c {
	case ConnectableYes:
		return "true"
	case ConnectableNo:
		return "false"
	default:
		return "unknown"
	}
}

// DiscoveryEvent is one advertising packet observation. A later event for the
// same address replaces the earlier one entirely.
type DiscoveryEvent struct {
	Address     string
	Name        string // empty when the advertiser sent no name
	RSSI        int
	Connectable Connectable
	Services    []ServiceID
	Appearance  *uint16
	SeenAt      time.Time
}

// Key returns the registry key for the event: the upper-cased address.
func (e DiscoveryEvent) Key() string {
	return strings.ToUpper(e.Address)
}

// Radio abstracts the BLE scanning hardware for testing.
type Radio interface {
	// Supported reports whether the host has a usable BLE adapter.
	Supported() bool
	// Enabled reports whether the adapter is powered on.
	Enabled() bool
	// StartScan begins scanning. onEvent may be called zero or more times and
	// onFailure at most once, both from a driver goroutine.
	StartScan(onEvent func(DiscoveryEvent), onFailure func(error))
	// StopScan halts scanning. Safe to call when no scan is running.
	StopScan() error
}

// Permissions reports and requests the OS permissions scanning needs.
type Permissions interface {
	Granted() bool
	// Request asks for the permissions and reports the outcome once.
	Request(ctx context.Context) <-chan bool
}

// LocationService reports whether location services are switched on.
type LocationService interface {
	Enabled() bool
}

// StaticLocation is a LocationService with a fixed answer, for hosts that
// have no location switch gating BLE scans.
type StaticLocation bool

func (s StaticLocation) Enabled() bool { return bool(s) }
