package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	t.Parallel()

	cards := Fallback("Photosynthesis")

	require.Len(t, cards, FallbackSize)
	assert.Equal(t, "What is the main concept of Photosynthesis?", cards[0].Question)
	assert.Equal(t, "Why is Photosynthesis important?", cards[1].Question)
	assert.Equal(t, "How can you apply knowledge of Photosynthesis?", cards[2].Question)

	for _, card := range cards {
		assert.NoError(t, card.Validate())
		assert.Contains(t, card.Question, "Photosynthesis")
		assert.Contains(t, card.Answer, "Photosynthesis")
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Fallback("Rust ownership"), Fallback("Rust ownership"))
}
