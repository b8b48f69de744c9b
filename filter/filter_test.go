package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaf(t *testing.T) {
	l := NewLeaf("Hash Hits", "files with known hashes")
	assert.Equal(t, "Hash Hits", l.Name())
	assert.Equal(t, "files with known hashes", l.Description())
	assert.False(t, l.IsActive())
	assert.False(t, l.IsDisabled())

	l.SetActive(true)
	l.SetDisabled(true)
	assert.True(t, l.ActiveProperty().Get())
	assert.True(t, l.DisabledProperty().Get())
}

func TestLeafEqual(t *testing.T) {
	tests := []struct {
		name     string
		a        Filter
		b        Filter
		expected bool
	}{
		{
			name:     "same fields",
			a:        NewLeaf("A", "d"),
			b:        NewLeaf("A", "d"),
			expected: true,
		},
		{
			name:     "different name",
			a:        NewLeaf("A", "d"),
			b:        NewLeaf("B", "d"),
			expected: false,
		},
		{
			name:     "different description",
			a:        NewLeaf("A", "d"),
			b:        NewLeaf("A", "e"),
			expected: false,
		},
		{
			name:     "different active",
			a:        NewLeaf("A", "", WithActive(true)),
			b:        NewLeaf("A", ""),
			expected: false,
		},
		{
			name:     "different disabled",
			a:        NewLeaf("A", "", WithDisabled(true)),
			b:        NewLeaf("A", ""),
			expected: false,
		},
		{
			name:     "nil",
			a:        NewLeaf("A", ""),
			b:        nil,
			expected: false,
		},
		{
			name:     "typed nil",
			a:        NewLeaf("A", ""),
			b:        (*Leaf)(nil),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}
