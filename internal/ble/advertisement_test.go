package ble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdvertisement(t *testing.T) {
	data := []byte{
		0x02, adFlags, 0x06,
		0x05, adComplete16, 0x0D, 0x18, 0x0F, 0x18,
		0x03, adAppearance, 0x41, 0x03, // 833 heart rate belt
		0x05, adCompleteName, 'H', 'R', 'M', '1',
		0x04, adManufacturerData, 0x4C, 0x00, 0x02,
	}
	adv, err := ParseAdvertisement(data)
	require.NoError(t, err)

	assert.Equal(t, byte(0x06), adv.Flags)
	assert.Equal(t, "HRM1", adv.LocalName)
	assert.Equal(t, []ServiceID{"180D", "180F"}, adv.Services)
	require.NotNil(t, adv.Appearance)
	assert.Equal(t, uint16(833), *adv.Appearance)
	require.NotNil(t, adv.CompanyID)
	assert.Equal(t, uint16(0x004C), *adv.CompanyID)
}

func TestParseAdvertisement128BitService(t *testing.T) {
	// 19b10000-e8f2-537e-4f6c-d104768a1214, little-endian on the air.
	le := []byte{0x14, 0x12, 0x8a, 0x76, 0x04, 0xd1, 0x6c, 0x4f, 0x7e, 0x53, 0xf2, 0xe8, 0x00, 0x00, 0xb1, 0x19}
	data := append([]byte{0x11, adComplete128}, le...)

	adv, err := ParseAdvertisement(data)
	require.NoError(t, err)
	assert.Equal(t, []ServiceID{"19B10000-E8F2-537E-4F6C-D104768A1214"}, adv.Services)
}

func TestParseAdvertisementBaseUUIDCollapses(t *testing.T) {
	// 0000180a-0000-1000-8000-00805f9b34fb
	le := []byte{0xfb, 0x34, 0x9b, 0x5f, 0x80, 0x00, 0x00, 0x80, 0x00, 0x10, 0x00, 0x00, 0x0a, 0x18, 0x00, 0x00}
	adv, err := ParseAdvertisement(append([]byte{0x11, adIncomplete128}, le...))
	require.NoError(t, err)
	assert.Equal(t, []ServiceID{"180A"}, adv.Services)
}

func TestParseAdvertisementShortNameDoesNotOverrideComplete(t *testing.T) {
	data := []byte{
		0x04, adCompleteName, 'F', 'o', 'o',
		0x02, adShortName, 'F',
	}
	adv, err := ParseAdvertisement(data)
	require.NoError(t, err)
	assert.Equal(t, "Foo", adv.LocalName)
}

func TestParseAdvertisementStopsAtPadding(t *testing.T) {
	data := []byte{0x02, adFlags, 0x04, 0x00, 0xFF, 0xFF}
	adv, err := ParseAdvertisement(data)
	require.NoError(t, err)
	assert.Equal(t, byte(0x04), adv.Flags)
}

func TestParseAdvertisementTruncated(t *testing.T) {
	_, err := ParseAdvertisement([]byte{0x05, adCompleteName, 'a'})
	assert.Error(t, err)
}
