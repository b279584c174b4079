package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"empty", "", 10, ""},
		{"zero max", "", 0, "..."},
		{"short", `{"ok":true}`, 64, `{"ok":true}`},
		{"exact", "hello", 5, "hello"},
		{"cut", `{"message":"field Status  not found"}`, 12, `{"message":"...`},
		{"multibyte boundary", "ab中文", 3, "ab..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}
