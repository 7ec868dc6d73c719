package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorForDisplay(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		width    int
		expected string
	}{
		{name: "nil", err: nil, width: 40, expected: ""},
		{name: "short", err: errors.New("store offline"), width: 40, expected: "Error: store offline"},
		{name: "empty message", err: errors.New(""), width: 40, expected: "Error: unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatErrorForDisplay(tt.err, tt.width))
		})
	}
}

func TestFormatErrorForDisplay_Truncates(t *testing.T) {
	err := errors.New(strings.Repeat("binding conflict ", 20))

	out := formatErrorForDisplay(err, 30)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, maxErrorLines)
	assert.True(t, strings.HasSuffix(out, "..."))
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 30)
	}
}
