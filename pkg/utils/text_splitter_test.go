package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIntoChunksRespectsBudget(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 100)
	chunks := SplitIntoChunks(text, 50)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 50)
	}
}

func TestSplitIntoChunksRejoinsToNormalizedOriginal(t *testing.T) {
	text := "  one\ttwo\n three    four five "
	chunks := SplitIntoChunks(text, 10)

	rejoined := strings.Join(chunks, " ")
	assert.Equal(t, strings.Join(strings.Fields(text), " "), rejoined)
}

func TestSplitIntoChunksOversizedWord(t *testing.T) {
	chunks := SplitIntoChunks("short supercalifragilisticexpialidocious end", 10)

	require.Len(t, chunks, 3)
	assert.Equal(t, "short", chunks[0])
	assert.Equal(t, "supercalifragilisticexpialidocious", chunks[1])
	assert.Equal(t, "end", chunks[2])
}

func TestSplitIntoChunksEmptyInput(t *testing.T) {
	chunks := SplitIntoChunks("   ", 10)
	require.Len(t, chunks, 1)
	assert.Equal(t, "   ", chunks[0])
}

func TestSplitIntoChunksSingleWord(t *testing.T) {
	chunks := SplitIntoChunks("hello", 100)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestSanitizeMessage(t *testing.T) {
	assert.Equal(t, "line one line two", SanitizeMessage("  line one\nline two  "))
	assert.Equal(t, "a b", SanitizeMessage("a\r\nb"))

	long := strings.Repeat("x", 1500)
	assert.Len(t, SanitizeMessage(long), 1000)
}
