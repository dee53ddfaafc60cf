package scan

import "github.com/chaz8081/blescan/internal/ble"

// Blocker is the verdict of a precondition check: Ready, or the first reason
// a scan cannot start.
type Blocker int

const (
	Ready Blocker = iota
	Unsupported
	RadioDisabled
	PermissionDenied
	LocationDisabled
)

func (b Blocker) String() string {
	switch b {
	case Ready:
		return "ready"
	case Unsupported:
		return "unsupported-hardware"
	case RadioDisabled:
		return "radio-disabled"
	case PermissionDenied:
		return "permission-denied"
	case LocationDisabled:
		return "location-service-disabled"
	default:
		return "unknown"
	}
}

// Message is the status line shown when the blocker refuses a scan.
func (b Blocker) Message() string {
	switch b {
	case Unsupported:
		return "Device does not support BLE scan."
	case RadioDisabled:
		return "Please turn on Bluetooth to scan for devices."
	case PermissionDenied:
		return "Scan permissions not granted."
	case LocationDisabled:
		return "Please enable Location Services to scan for devices."
	default:
		return ""
	}
}

// Checker evaluates the environment before a scan. It only reads from its
// providers.
type Checker struct {
	Radio       ble.Radio
	Permissions ble.Permissions
	Location    ble.LocationService
}

// Check returns the first failing precondition, in the order hardware,
// radio power, permissions, location services.
func (c Checker) Check() Blocker {
	switch {
	case c.Radio == nil || !c.Radio.Supported():
		return Unsupported
	case !c.Radio.Enabled():
		return RadioDisabled
	case c.Permissions != nil && !c.Permissions.Granted():
		return PermissionDenied
	case c.Location != nil && !c.Location.Enabled():
		return LocationDisabled
	}
	return Ready
}
