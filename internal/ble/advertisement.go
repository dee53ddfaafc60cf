package ble

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// AD structure types from the Bluetooth Core Supplement, Part A.
const (
	adFlags            = 0x01
	adIncomplete16     = 0x02
	adComplete16       = 0x03
	adIncomplete128    = 0x06
	adComplete128      = 0x07
	adShortName        = 0x08
	adCompleteName     = 0x09
	adAppearance       = 0x19
	adManufacturerData = 0xFF
)

// Advertisement holds the fields decoded from raw advertising data.
type Advertisement struct {
	Flags      byte
	LocalName  string
	Services   []ServiceID
	Appearance *uint16
	CompanyID  *uint16
}

// ParseAdvertisement decodes a sequence of length-type-value AD structures.
// A zero length terminates the data early, as padding does on the air.
func ParseAdvertisement(data []byte) (Advertisement, error) {
	var adv Advertisement
	for i := 0; i < len(data); {
		n := int(data[i])
		if n == 0 {
			break
		}
		if i+1+n > len(data) {
			return adv, fmt.Errorf("ble: AD structure at offset %d overruns payload (len %d)", i, n)
		}
		typ := data[i+1]
		val := data[i+2 : i+1+n]
		i += 1 + n

		switch typ {
		case adFlags:
			if len(val) > 0 {
				adv.Flags = val[0]
			}
		case adShortName:
			if adv.LocalName == "" {
				adv.LocalName = string(val)
			}
		case adCompleteName:
			adv.LocalName = string(val)
		case adIncomplete16, adComplete16:
			for j := 0; j+2 <= len(val); j += 2 {
				adv.Services = append(adv.Services, ServiceID(fmt.Sprintf("%04X", binary.LittleEndian.Uint16(val[j:]))))
			}
		case adIncomplete128, adComplete128:
			for j := 0; j+16 <= len(val); j += 16 {
				adv.Services = append(adv.Services, NewServiceID(uuid128String(val[j:j+16])))
			}
		case adAppearance:
			if len(val) >= 2 {
				a := binary.LittleEndian.Uint16(val)
				adv.Appearance = &a
			}
		case adManufacturerData:
			if len(val) >= 2 {
				c := binary.LittleEndian.Uint16(val)
				adv.CompanyID = &c
			}
		}
	}
	return adv, nil
}

// uuid128String formats a little-endian 128-bit UUID as on the wire.
func uuid128String(le []byte) string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = le[15-i]
	}
	h := fmt.Sprintf("%X", b)
	return strings.Join([]string{h[0:8], h[8:12], h[12:16], h[16:20], h[20:32]}, "-")
}
