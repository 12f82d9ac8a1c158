package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		max    int
		want   string
		wantOK bool
	}{
		{"plain", "hello", 100, "hello", true},
		{"trims whitespace", "  hello  ", 100, "hello", true},
		{"empty", "", 100, "", false},
		{"whitespace only", "   \t\n ", 100, "", false},
		// Over-length input is truncated, not rejected.
		{"truncates", strings.Repeat("a", 150), 100, strings.Repeat("a", 100), true},
		{"exactly max", strings.Repeat("b", 100), 100, strings.Repeat("b", 100), true},
		{"truncation does not leave trailing space", "abc def", 4, "abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cleanText(tt.in, tt.max)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range []string{"School", "College", "Office", "Hostel", "Apartment"} {
		assert.True(t, validCategory(category), category)
	}
	for _, category := range []string{"", "school", "HOSTEL", "Mall", "Apartment "} {
		assert.False(t, validCategory(category), category)
	}
}

func TestValidType(t *testing.T) {
	assert.True(t, validType("Lost"))
	assert.True(t, validType("Found"))
	assert.False(t, validType("lost"))
	assert.False(t, validType("Stolen"))
}
