package ticket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessIDMatches(t *testing.T) {
	tests := []struct {
		candidate string
		requested string
		want      bool
	}{
		{"65", "65", true},
		{"65.00", "65", true},
		{"65.0", "65", true},
		{"65", "65.00", true},
		{"165", "65", false},
		{"650", "65", false},
		{"65.5", "65", false},
		{"65.", "65", false},
		{"", "65", false},
		{"65", "", false},
		{"A-65", "A-65", true},
		{"A-65", "65", false},
		{"+65", "65", false},
		{"-65", "65", false},
		{"065", "65", false},
		{"0065.0", "65", false},
		{"65", "065", false},
		{"65.-0", "65", false},
		{"0.00", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.candidate+"~"+tt.requested, func(t *testing.T) {
			assert.Equal(t, tt.want, BusinessIDMatches(tt.candidate, tt.requested))
		})
	}
}

func TestFormatBusinessID(t *testing.T) {
	assert.Equal(t, "65", FormatBusinessID(json.Number("65")))
	assert.Equal(t, "65.00", FormatBusinessID(json.Number("65.00")))
	assert.Equal(t, "65", FormatBusinessID(float64(65)))
	assert.Equal(t, "7", FormatBusinessID(7))
	assert.Equal(t, "65", FormatBusinessID(" 65 "))
	assert.Equal(t, "", FormatBusinessID(nil))
	assert.Equal(t, "", FormatBusinessID([]any{1}))
}

func TestBackReferenceValue(t *testing.T) {
	n, ok := BackReferenceValue("65.00")
	assert.True(t, ok)
	assert.Equal(t, 65, n)

	_, ok = BackReferenceValue("")
	assert.False(t, ok)
	_, ok = BackReferenceValue("65.5")
	assert.False(t, ok)
	_, ok = BackReferenceValue("+65")
	assert.False(t, ok)
}
