package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaz8081/blescan/internal/ble"
	"github.com/chaz8081/blescan/internal/scan"
)

type fakeIntents struct {
	toggles     int
	filter      []bool
	permissions []bool
}

func (f *fakeIntents) Toggle()                       { f.toggles++ }
func (f *fakeIntents) SetFilterConnectable(on bool)  { f.filter = append(f.filter, on) }
func (f *fakeIntents) PermissionResult(granted bool) { f.permissions = append(f.permissions, granted) }

type fakeExporter struct {
	text string
	err  error
}

func (f *fakeExporter) Export(text string) error {
	f.text = text
	return f.err
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func newTestModel(intents *fakeIntents, exporter Exporter) Model {
	return New(context.Background(), intents, nil, exporter, make(chan scan.UiState))
}

func TestScanKeyToggles(t *testing.T) {
	intents := &fakeIntents{}
	m := newTestModel(intents, nil)

	m, _ = update(t, m, runes("s"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, intents.toggles)
}

func TestFilterKeyIgnoredWhileScanning(t *testing.T) {
	intents := &fakeIntents{}
	m := newTestModel(intents, nil)

	m, _ = update(t, m, stateMsg(scan.UiState{FilterConnectable: true}))
	m, _ = update(t, m, runes("f"))
	assert.Equal(t, []bool{false}, intents.filter)

	m, _ = update(t, m, stateMsg(scan.UiState{Scanning: true, FilterConnectable: true}))
	_, _ = update(t, m, runes("f"))
	assert.Len(t, intents.filter, 1)
}

func TestPermissionMessageForwarded(t *testing.T) {
	intents := &fakeIntents{}
	m := newTestModel(intents, nil)
	_, _ = update(t, m, permissionMsg(true))
	assert.Equal(t, []bool{true}, intents.permissions)
}

func TestRequestPermissionsReportsGrant(t *testing.T) {
	cmd := requestPermissions(context.Background(), grantAll{})
	require.NotNil(t, cmd)
	assert.Equal(t, permissionMsg(true), cmd())
	assert.Nil(t, requestPermissions(context.Background(), nil))
}

type grantAll struct{}

func (grantAll) Granted() bool { return true }
func (grantAll) Request(context.Context) <-chan bool {
	ch := make(chan bool, 1)
	ch <- true
	return ch
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(&fakeIntents{}, nil)
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestStateMsgWaitsForNext(t *testing.T) {
	states := make(chan scan.UiState, 1)
	m := New(context.Background(), &fakeIntents{}, nil, nil, states)

	m, cmd := update(t, m, stateMsg(scan.UiState{Status: "Scanning...", Scanning: true}))
	assert.Equal(t, "Scanning...", m.State().Status)
	require.NotNil(t, cmd)

	states <- scan.UiState{Status: "Scan complete."}
	assert.Equal(t, stateMsg(scan.UiState{Status: "Scan complete."}), cmd())
}

func TestViewRendersDevicesAndStatus(t *testing.T) {
	m := newTestModel(&fakeIntents{}, nil)
	m, _ = update(t, m, stateMsg(scan.UiState{
		HasPermissions: true,
		Status:         "Scan complete.",
		Devices: []ble.DiscoveryEvent{
			{Address: "AA:BB:CC:DD:EE:FF", Name: "Band", RSSI: -40, Services: []ble.ServiceID{"180D"}},
		},
	}))

	view := m.View()
	assert.Contains(t, view, "AA:BB:CC:DD:EE:FF")
	assert.Contains(t, view, "Heart Rate")
	assert.Contains(t, view, "Scan complete.")
	assert.Contains(t, view, "[ ] Filter Connectable")
}

func TestViewEmptyList(t *testing.T) {
	m := newTestModel(&fakeIntents{}, nil)
	m, _ = update(t, m, stateMsg(scan.UiState{FilterConnectable: true, Status: "Scan complete. No devices found."}))
	assert.Contains(t, m.View(), "No connectable devices found")

	m, _ = update(t, m, stateMsg(scan.UiState{Status: "Scan complete. No devices found."}))
	assert.Contains(t, m.View(), "No devices found")
}

func TestExportKey(t *testing.T) {
	exporter := &fakeExporter{}
	m := newTestModel(&fakeIntents{}, exporter)
	m, _ = update(t, m, stateMsg(scan.UiState{Devices: []ble.DiscoveryEvent{{Address: "01", RSSI: -50}}}))

	m, cmd := update(t, m, runes("y"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Contains(t, exporter.text, "Address: 01")

	m, _ = update(t, m, msg)
	assert.Contains(t, m.View(), "Device list exported.")

	exporter.err = errors.New("no clipboard")
	_, cmd = update(t, m, runes("y"))
	m, _ = update(t, m, cmd())
	assert.Contains(t, m.View(), "Export failed: no clipboard")
}
