// Package export renders the device list as text and hands it to the
// desktop, either through the clipboard or as simulated keystrokes, using
// robotgo.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-vgo/robotgo"

	"github.com/chaz8081/blescan/internal/ble"
	"github.com/chaz8081/blescan/internal/ble/assigned"
)

// Services renders the decoded service list, or "N/A" when there is none.
func Services(ids []ble.ServiceID) string {
	if len(ids) == 0 {
		return "N/A"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name()
	}
	return strings.Join(names, ", ")
}

// DisplayName returns the advertised name or "N/A".
func DisplayName(ev ble.DiscoveryEvent) string {
	if ev.Name == "" {
		return "N/A"
	}
	return ev.Name
}

// Device renders one device as a block of "Key: value" lines.
func Device(ev ble.DiscoveryEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Address: %s\n", ev.Address)
	fmt.Fprintf(&b, "Name: %s\n", DisplayName(ev))
	fmt.Fprintf(&b, "RSSI: %d\n", ev.RSSI)
	fmt.Fprintf(&b, "Service UUIDs: %s\n", Services(ev.Services))
	if ev.Appearance != nil {
		fmt.Fprintf(&b, "Appearance: %s\n", assigned.Appearance(int(*ev.Appearance)))
	}
	b.WriteString("Connectable: " + strconv.FormatBool(ev.Connectable.Admits()))
	return b.String()
}

// EmptyMessage is shown in place of the list when nothing was found.
func EmptyMessage(filterConnectable bool) string {
	if filterConnectable {
		return "No connectable devices found"
	}
	return "No devices found"
}

// Report renders the whole device list, blank-line separated.
func Report(devices []ble.DiscoveryEvent, filterConnectable bool) string {
	if len(devices) == 0 {
		return EmptyMessage(filterConnectable)
	}
	blocks := make([]string, len(devices))
	for i, ev := range devices {
		blocks[i] = Device(ev)
	}
	return strings.Join(blocks, "\n\n")
}

// Exporter sends text to the desktop.
type Exporter struct {
	method string // "clipboard" or "type"
}

// NewExporter creates an Exporter with the given method.
// method must be "clipboard" or "type" (keystroke simulation).
func NewExporter(method string) *Exporter {
	return &Exporter{method: method}
}

// Export sends text using the configured method.
func (e *Exporter) Export(text string) error {
	if text == "" {
		return nil
	}

	switch e.method {
	case "type":
		robotgo.Type(text)
		return nil
	default: // "clipboard"
		if err := robotgo.WriteAll(text); err != nil {
			return fmt.Errorf("export: write to clipboard: %w", err)
		}
		return nil
	}
}
