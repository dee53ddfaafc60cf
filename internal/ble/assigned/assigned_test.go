package assigned

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppearance(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Unknown"},
		{64, "Generic Phone"},
		{961, "Keyboard"},
		{5188, "Location and Navigation Pod"},
		{65, "Unknown or Reserved"},
		{-1, "Unknown or Reserved"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Appearance(tt.code), "Appearance(%d)", tt.code)
	}
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "Heart Rate", ServiceName("180D"))
	assert.Equal(t, "Heart Rate", ServiceName("180d"), "lookup should ignore case")
	assert.Equal(t, "Battery Service", ServiceName("180F"))
	assert.Equal(t, "0xFEAA", ServiceName("FEAA"))
	assert.Equal(t, "0xfe9f", ServiceName("fe9f"), "fallback keeps the caller's spelling")
}

func TestTableSizes(t *testing.T) {
	assert.Len(t, appearances, 50)
	assert.Len(t, services, 37)
}
