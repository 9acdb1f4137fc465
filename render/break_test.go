package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(widths ...int) []Word {
	out := make([]Word, len(widths))
	for i, w := range widths {
		out[i] = Word{Content: "x", Width: w, WhitespaceWidth: 1}
	}
	out[len(out)-1].WhitespaceWidth = 0
	return out
}

func TestOptimalFitBreakSingleLineWhenEverythingFits(t *testing.T) {
	lines := optimalFitBreak(words(3, 3, 3), 20, 20)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 3)
}

func TestOptimalFitBreakSplitsAcrossLines(t *testing.T) {
	lines := optimalFitBreak(words(5, 5, 5, 5), 11, 11)
	require.GreaterOrEqual(t, len(lines), 2)
	for _, line := range lines {
		w := lineWidth(line, 0, len(line))
		assert.LessOrEqual(t, w, 11.0)
	}
}

func TestOptimalFitBreakHonoursDistinctFirstLineBudget(t *testing.T) {
	lines := optimalFitBreak(words(5, 5), 4, 20)
	require.GreaterOrEqual(t, len(lines), 1)
	assert.Equal(t, 0.0, lineWidth(lines[0], 0, len(lines[0]))-float64(lines[0][0].Width), "first line, if it holds only one word, carries no internal gap")
}

func TestOptimalFitBreakOverlongSingleWordDoesNotLoop(t *testing.T) {
	lines := optimalFitBreak(words(50), 10, 10)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 1)
}
