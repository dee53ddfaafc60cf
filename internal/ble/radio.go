package ble

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// TinyGoRadio wraps tinygo-org/bluetooth. On macOS addresses are
// CoreBluetooth UUIDs rather than MAC addresses; they are still stable per
// device and serve as the registry key.
type TinyGoRadio struct {
	adapter *bluetooth.Adapter

	mu        sync.Mutex
	enabled   bool
	enableErr error
	scanning  bool
	stopped   bool
}

// NewTinyGoRadio creates a Radio backed by the default host adapter.
func NewTinyGoRadio() *TinyGoRadio {
	return &TinyGoRadio{adapter: bluetooth.DefaultAdapter}
}

func (r *TinyGoRadio) Supported() bool {
	return r.adapter != nil
}

// Enabled powers the adapter on if needed and reports whether it is usable.
func (r *TinyGoRadio) Enabled() bool {
	return r.enable() == nil
}

// enable calls Enable on the adapter once it succeeds; failures are retried
// on the next call so the user can fix the radio and try again.
func (r *TinyGoRadio) enable() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabled {
		return nil
	}
	if r.adapter == nil {
		r.enableErr = &ScanError{Code: FailureUnsupported}
		return r.enableErr
	}
	if err := r.adapter.Enable(); err != nil {
		slog.Warn("[BLE] enable adapter failed", "error", err)
		r.enableErr = err
		return err
	}
	r.enabled = true
	r.enableErr = nil
	return nil
}

func (r *TinyGoRadio) StartScan(onEvent func(DiscoveryEvent), onFailure func(error)) {
	r.mu.Lock()
	if r.scanning {
		r.mu.Unlock()
		go onFailure(&ScanError{Code: FailureAlreadyStarted})
		return
	}
	r.scanning = true
	r.stopped = false
	r.mu.Unlock()

	go func() {
		if err := r.enable(); err != nil {
			r.finish()
			onFailure(ClassifyScanError(err))
			return
		}
		slog.Debug("[BLE] scan started")
		err := r.adapter.Scan(func(a *bluetooth.Adapter, result bluetooth.ScanResult) {
			if r.isStopped() {
				// StopScan raced ahead of the driver starting the scan.
				_ = a.StopScan()
				return
			}
			onEvent(eventFromResult(result))
		})
		r.finish()
		if err != nil && !r.isStopped() {
			onFailure(ClassifyScanError(err))
		}
	}()
}

func (r *TinyGoRadio) StopScan() error {
	r.mu.Lock()
	r.stopped = true
	scanning := r.scanning
	r.mu.Unlock()
	if !scanning {
		return nil
	}
	if err := r.adapter.StopScan(); err != nil {
		slog.Debug("[BLE] stop scan", "error", err)
	}
	return nil
}

func (r *TinyGoRadio) finish() {
	r.mu.Lock()
	r.scanning = false
	r.mu.Unlock()
}

func (r *TinyGoRadio) isStopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// Compile-time check that TinyGoRadio implements Radio.
var _ Radio = (*TinyGoRadio)(nil)

// eventFromResult converts a driver scan result. The driver does not expose
// the connectable bit, so it is left Unknown.
func eventFromResult(result bluetooth.ScanResult) DiscoveryEvent {
	ev := DiscoveryEvent{
		Address: result.Address.String(),
		Name:    result.LocalName(),
		RSSI:    int(result.RSSI),
		SeenAt:  time.Now(),
	}
	for _, u := range result.ServiceUUIDs() {
		ev.Services = append(ev.Services, NewServiceID(u.String()))
	}
	if raw := result.Bytes(); len(raw) > 0 {
		adv, err := ParseAdvertisement(raw)
		if err != nil {
			slog.Debug("[BLE] malformed advertisement", "address", ev.Address, "error", err)
		}
		ev.Appearance = adv.Appearance
		if ev.Name == "" {
			ev.Name = adv.LocalName
		}
		if len(ev.Services) == 0 {
			ev.Services = adv.Services
		}
	}
	return ev
}

// AdapterPermissions treats a successful adapter enable as the permission
// grant: CoreBluetooth prompts on first use and BlueZ refuses unprivileged
// callers at that point.
type AdapterPermissions struct {
	radio *TinyGoRadio

	mu      sync.Mutex
	granted bool
}

// NewAdapterPermissions creates a permission provider for the radio.
func NewAdapterPermissions(radio *TinyGoRadio) *AdapterPermissions {
	return &AdapterPermissions{radio: radio}
}

func (p *AdapterPermissions) Granted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.granted
}

func (p *AdapterPermissions) Request(ctx context.Context) <-chan bool {
	ch := make(chan bool, 1)
	go func() {
		err := p.radio.enable()
		granted := err == nil || !isPermissionError(err)
		p.mu.Lock()
		p.granted = granted
		p.mu.Unlock()
		slog.Info("[BLE] permission request finished", "granted", granted)
		select {
		case ch <- granted:
		case <-ctx.Done():
		}
		close(ch)
	}()
	return ch
}

func isPermissionError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"permission", "not authorized", "unauthorized", "access denied", "not permitted"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
