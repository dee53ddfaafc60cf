package ble

import (
	"errors"
	"fmt"
	"strings"
)

// FailureCode classifies a runtime scan failure reported by the driver.
type FailureCode int

const (
	FailureUnknown FailureCode = iota
	FailureAlreadyStarted
	FailureRegistration
	FailureInternal
	FailureUnsupported
)

// ScanError is the terminal failure of one scan session.
type ScanError struct {
	Code FailureCode
	Raw  int // driver-specific code, reported for FailureUnknown
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ble: scan: %s: %v", e.Reason(), e.Err)
	}
	return "ble: scan: " + e.Reason()
}

func (e *ScanError) Unwrap() error { return e.Err }

// Reason is the short user-facing description of the failure.
func (e *ScanError) Reason() string {
	switch e.Code {
	case FailureAlreadyStarted:
		return "Scan already started."
	case FailureRegistration:
		return "App registration failed."
	case FailureInternal:
		return "Internal error."
	case FailureUnsupported:
		return "Feature unsupported."
	default:
		return fmt.Sprintf("Unknown scan error: %d", e.Raw)
	}
}

// ClassifyScanError wraps a driver error in a ScanError, guessing the code
// from the driver's message. Errors that already are ScanErrors pass through.
func ClassifyScanError(err error) *ScanError {
	if err == nil {
		return nil
	}
	var se *ScanError
	if errors.As(err, &se) {
		return se
	}

	msg := strings.ToLower(err.Error())
	code := FailureInternal
	switch {
	case strings.Contains(msg, "already"):
		code = FailureAlreadyStarted
	case strings.Contains(msg, "not supported"), strings.Contains(msg, "unsupported"):
		code = FailureUnsupported
	case strings.Contains(msg, "register"), strings.Contains(msg, "not authorized"), strings.Contains(msg, "permission"):
		code = FailureRegistration
	}
	return &ScanError{Code: code, Err: err}
}

// FailureMessage renders the status line shown for a failed session.
func FailureMessage(err error) string {
	return "Scan failed: " + ClassifyScanError(err).Reason()
}
