package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaz8081/blescan/internal/ble"
)

func TestServices(t *testing.T) {
	assert.Equal(t, "N/A", Services(nil))
	assert.Equal(t, "Heart Rate, Battery Service, 0xFE9F, 19B10000-E8F2-537E-4F6C-D104768A1214",
		Services([]ble.ServiceID{"180D", "180F", "FE9F", "19B10000-E8F2-537E-4F6C-D104768A1214"}))
}

func TestDevice(t *testing.T) {
	appearance := uint16(961)
	ev := ble.DiscoveryEvent{
		Address:     "AA:BB:CC:DD:EE:FF",
		Name:        "Keys",
		RSSI:        -42,
		Connectable: ble.ConnectableUnknown,
		Services:    []ble.ServiceID{"1812"},
		Appearance:  &appearance,
	}
	want := "Address: AA:BB:CC:DD:EE:FF\n" +
		"Name: Keys\n" +
		"RSSI: -42\n" +
		"Service UUIDs: Human Interface Device\n" +
		"Appearance: Keyboard\n" +
		"Connectable: true"
	assert.Equal(t, want, Device(ev))
}

func TestDeviceWithoutName(t *testing.T) {
	ev := ble.DiscoveryEvent{Address: "01", RSSI: -90, Connectable: ble.ConnectableNo}
	want := "Address: 01\nName: N/A\nRSSI: -90\nService UUIDs: N/A\nConnectable: false"
	assert.Equal(t, want, Device(ev))
}

func TestReport(t *testing.T) {
	assert.Equal(t, "No connectable devices found", Report(nil, true))
	assert.Equal(t, "No devices found", Report(nil, false))

	devices := []ble.DiscoveryEvent{
		{Address: "01", RSSI: -40, Connectable: ble.ConnectableYes},
		{Address: "02", RSSI: -50, Connectable: ble.ConnectableYes},
	}
	got := Report(devices, false)
	assert.Contains(t, got, "Address: 01")
	assert.Contains(t, got, "Connectable: true\n\nAddress: 02")
}

func TestExportEmptyIsNoop(t *testing.T) {
	assert.NoError(t, NewExporter("clipboard").Export(""))
}
