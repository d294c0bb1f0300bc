package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// TestTruncateStatus verifies truncation counts runes so multi-byte text
// is never split mid-sequence.
func TestTruncateStatus(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays", "ok", 10, "ok"},
		{"exact stays", "exactly-10", 10, "exactly-10"},
		{"ascii truncated", "a-long-detail-string", 10, "a-long-..."},
		{"multibyte truncated", "アカウント認証エラー詳細", 10, "アカウント認証..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateStatus(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
