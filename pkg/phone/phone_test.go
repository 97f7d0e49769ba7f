package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
	}{
		{"us national", "(212) 555-0123", "US", "+12125550123"},
		{"already e164", "+442071838750", "US", "+442071838750"},
		{"gb national", "020 7183 8750", "GB", "+442071838750"},
		{"empty", "", "US", ""},
		{"garbage kept verbatim", "call reception", "US", "call reception"},
		{"too short kept verbatim", "123", "US", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.region))
		})
	}
}
