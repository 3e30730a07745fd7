package namegen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var namePattern = regexp.MustCompile(`^[a-z]+-[a-z]+-[a-z]+$`)

func TestGenerateFormat(t *testing.T) {
	gen := New()

	for i := 0; i < 50; i++ {
		name := gen.Generate()
		assert.Regexp(t, namePattern, name)
	}
}

func TestGenerateDrawsFromDictionaries(t *testing.T) {
	gen := NewWithSeed(42)

	parts := strings.Split(gen.Generate(), "-")
	require.Len(t, parts, 3)
	assert.Contains(t, adjectives, parts[0])
	assert.Contains(t, colors, parts[1])
	assert.Contains(t, animals, parts[2])
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	first := NewWithSeed(7)
	second := NewWithSeed(7)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Generate(), second.Generate())
	}
}
