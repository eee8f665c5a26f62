package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt("Photosynthesis", 5)

	assert.True(t, strings.HasPrefix(prompt, `Create 5 educational flashcards about "Photosynthesis".`))
	assert.Contains(t, prompt, "Topic: Photosynthesis")
	assert.Contains(t, prompt, "Generate 5 flashcards now.")
	assert.Contains(t, prompt, `"flashcards": [`)
	assert.Contains(t, prompt, `"question":`)
	assert.Contains(t, prompt, `"answer":`)
	assert.Contains(t, prompt, "what, how, why, when, where")
	assert.Contains(t, prompt, "informative but not too lengthy")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BuildPrompt("The French Revolution", 8), BuildPrompt("The French Revolution", 8))
	assert.NotEqual(t, BuildPrompt("The French Revolution", 8), BuildPrompt("The French Revolution", 3))
}

func TestBuildPromptKeepsTopicVerbatim(t *testing.T) {
	t.Parallel()

	topic := `100% "quoted" {braces} %d`
	prompt := BuildPrompt(topic, 2)

	assert.Contains(t, prompt, "Topic: "+topic)
	assert.NotContains(t, prompt, "%!")
}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	req := NewRequest("Go channels", 4)

	assert.Equal(t, SystemInstruction, req.SystemInstruction)
	assert.Contains(t, req.SystemInstruction, "valid JSON")
	assert.Equal(t, BuildPrompt("Go channels", 4), req.UserPrompt)
	assert.InDelta(t, 0.7, req.Temperature, 1e-6)
	assert.Equal(t, int32(2048), req.MaxOutputTokens)
}
