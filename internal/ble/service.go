package ble

import (
	"strings"

	"github.com/chaz8081/blescan/internal/ble/assigned"
)

// baseUUIDSuffix is the tail of the Bluetooth base UUID
// 0000XXXX-0000-1000-8000-00805F9B34FB.
const baseUUIDSuffix = "-0000-1000-8000-00805F9B34FB"

// ServiceID is an advertised service identifier: a 4-digit upper-case hex
// code for SIG-assigned services, otherwise the full 128-bit UUID string.
type ServiceID string

// NewServiceID canonicalises a UUID string. Anything on the base UUID
// collapses to its 16-bit code.
func NewServiceID(uuid string) ServiceID {
	s := strings.ToUpper(strings.TrimSpace(uuid))
	if len(s) == 36 && strings.HasPrefix(s, "0000") && strings.HasSuffix(s, baseUUIDSuffix) {
		return ServiceID(s[4:8])
	}
	return ServiceID(s)
}

// Is16Bit reports whether the id is a short SIG code.
func (id ServiceID) Is16Bit() bool {
	return len(id) == 4
}

// Name returns the human-readable service name for short codes and the full
// UUID for vendor services.
func (id ServiceID) Name() string {
	if id.Is16Bit() {
		return assigned.ServiceName(string(id))
	}
	return string(id)
}
