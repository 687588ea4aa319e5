package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Coffee $5.50 at Starbucks",
			want:  "Coffee $5.50 at Starbucks",
		},
		{
			name:  "newlines become separators, not deletions",
			input: "Store 12\n34.50 total",
			want:  "Store 12 34.50 total",
		},
		{
			name:  "tabs and carriage returns",
			input: "lunch\t15.75\r\nat cafe",
			want:  "lunch 15.75 at cafe",
		},
		{
			name:  "null bytes and runs collapse to one space",
			input: "5\x00\x00coffee",
			want:  "5 coffee",
		},
		{
			name:  "leading and trailing whitespace trimmed",
			input: "\n\t20 at HNM\n",
			want:  "20 at HNM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}
