package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMousePhase(t *testing.T) {
	tests := []struct {
		name                               string
		justPressed, pressed, justReleased bool
		want                               PointerPhase
	}{
		{name: "idle", want: PointerNone},
		{name: "just pressed", justPressed: true, pressed: true, want: PointerDown},
		{name: "held", pressed: true, want: PointerMove},
		{name: "just released", justReleased: true, want: PointerUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mousePhase(tt.justPressed, tt.pressed, tt.justReleased))
		})
	}
}

func TestNewPointerTracker(t *testing.T) {
	p := NewPointerTracker()
	assert.False(t, p.touching)
	assert.Equal(t, -1, int(p.touchID))
}

func TestAppendRuneTokens(t *testing.T) {
	got := appendRuneTokens([]string{"s"}, []rune{'+', 'g', 'é'})
	assert.Equal(t, []string{"s", "+", "g", "é"}, got)
	assert.Empty(t, appendRuneTokens(nil, nil))
}
