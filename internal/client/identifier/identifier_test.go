package identifier

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsUUID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{uuid.NewString(), true},
		{"8f2c5b7a-2f5e-4a36-9a7e-0c4b1f2d9e10", true},
		{"8F2C5B7A-2F5E-4A36-9A7E-0C4B1F2D9E10", true},
		{"urn:uuid:8f2c5b7a-2f5e-4a36-9a7e-0c4b1f2d9e10", false},
		{"8f2c5b7a2f5e4a369a7e0c4b1f2d9e10", false},
		{"{8f2c5b7a-2f5e-4a36-9a7e-0c4b1f2d9e10}", false},
		{"hh-ca1-pyramidal", false},
		{"m1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUUID(tt.in))
		})
	}
}
