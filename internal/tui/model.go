// Package tui is the terminal front end: it renders the scanner's UiState
// and turns key presses into controller intents.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chaz8081/blescan/internal/ble"
	"github.com/chaz8081/blescan/internal/export"
	"github.com/chaz8081/blescan/internal/scan"
)

// Intents is the subset of the scan controller the screen drives.
type Intents interface {
	Toggle()
	SetFilterConnectable(on bool)
	PermissionResult(granted bool)
}

// Exporter sends the rendered device report somewhere outside the terminal.
type Exporter interface {
	Export(text string) error
}

type stateMsg scan.UiState

type permissionMsg bool

type exportedMsg struct{ err error }

// Model is the Bubble Tea model for the scanner screen.
type Model struct {
	ctx      context.Context
	intents  Intents
	perms    ble.Permissions
	exporter Exporter
	states   <-chan scan.UiState

	state   scan.UiState
	notice  string
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	width   int
}

// New creates the screen model. states is a store subscription; perms is
// asked for permission once when the program starts.
func New(ctx context.Context, intents Intents, perms ble.Permissions, exporter Exporter, states <-chan scan.UiState) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return Model{
		ctx:      ctx,
		intents:  intents,
		perms:    perms,
		exporter: exporter,
		states:   states,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForState(m.states), requestPermissions(m.ctx, m.perms), m.spinner.Tick)
}

func waitForState(ch <-chan scan.UiState) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

func requestPermissions(ctx context.Context, perms ble.Permissions) tea.Cmd {
	if perms == nil {
		return nil
	}
	return func() tea.Msg {
		granted, ok := <-perms.Request(ctx)
		return permissionMsg(ok && granted)
	}
}

func (m Model) exportCmd() tea.Cmd {
	if m.exporter == nil {
		return nil
	}
	text := export.Report(m.state.Devices, m.state.FilterConnectable)
	exporter := m.exporter
	return func() tea.Msg {
		return exportedMsg{err: exporter.Export(text)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Scan):
			m.notice = ""
			m.intents.Toggle()
		case key.Matches(msg, m.keys.Filter):
			// The checkbox is disabled while a scan runs.
			if !m.state.Scanning {
				m.intents.SetFilterConnectable(!m.state.FilterConnectable)
			}
		case key.Matches(msg, m.keys.Export):
			return m, m.exportCmd()
		}
		return m, nil

	case stateMsg:
		m.state = scan.UiState(msg)
		return m, waitForState(m.states)

	case permissionMsg:
		m.intents.PermissionResult(bool(msg))
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.notice = "Export failed: " + msg.err.Error()
		} else {
			m.notice = "Device list exported."
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// State returns the last UiState the screen rendered.
func (m Model) State() scan.UiState { return m.state }

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("BLE Scanner"))
	b.WriteString("\n\n")
	b.WriteString(m.deviceList())
	b.WriteString("\n")
	b.WriteString(m.controls())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(mutedStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) deviceList() string {
	if len(m.state.Devices) == 0 {
		if m.state.Scanning {
			return mutedStyle.Render("Waiting for advertisements...") + "\n"
		}
		return mutedStyle.Render(export.EmptyMessage(m.state.FilterConnectable)) + "\n"
	}
	var b strings.Builder
	for _, ev := range m.state.Devices {
		b.WriteString(deviceStyle.Render(export.Device(ev)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) controls() string {
	var button string
	switch {
	case !m.state.HasPermissions:
		button = disabledButtonStyle.Render("Scan")
	case m.state.Scanning:
		button = stopButtonStyle.Render("Stop Scanning")
	default:
		button = buttonStyle.Render("Scan")
	}

	box := "[ ]"
	if m.state.FilterConnectable {
		box = "[x]"
	}
	filter := box + " Filter Connectable"
	if m.state.Scanning {
		filter = mutedStyle.Render(filter)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, button, "  ", filter)
}

func (m Model) statusLine() string {
	status := m.state.Status
	if m.state.Scanning {
		status = m.spinner.View() + " " + status
	}
	if m.state.StatusKind == scan.StatusError {
		return errorStyle.Render(status)
	}
	return status
}
