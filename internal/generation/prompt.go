package generation

import "fmt"

// Fixed request parameters sent with every generation call.
const (
	SystemInstruction = "You are an expert educator who creates high-quality educational flashcards. " +
		"Always respond with valid JSON format containing an array of flashcard objects."
	Temperature     float32 = 0.7
	MaxOutputTokens int32   = 2048
)

const promptTemplate = `Create %[1]d educational flashcards about "%[2]s".

Requirements:
- Each flashcard should have a clear, concise question and a comprehensive answer
- Questions should test understanding, not just memorization
- Answers should be informative but not too lengthy
- Cover different aspects of the topic
- Use varied question types (what, how, why, when, where)
- Ensure questions are appropriate for learning and studying

Return the flashcards in this exact JSON format:
{
  "flashcards": [
    {
      "question": "Clear, specific question about the topic",
      "answer": "Comprehensive but concise answer"
    }
  ]
}

Topic: %[2]s
Generate %[1]d flashcards now.`

// BuildPrompt returns the user prompt asking for count flashcards about topic.
// The topic is used verbatim; callers validate its length beforehand.
func BuildPrompt(topic string, count int) string {
	return fmt.Sprintf(promptTemplate, count, topic)
}

// NewRequest assembles the full generation request for topic and count.
func NewRequest(topic string, count int) Request {
	return Request{
		SystemInstruction: SystemInstruction,
		UserPrompt:        BuildPrompt(topic, count),
		Temperature:       Temperature,
		MaxOutputTokens:   MaxOutputTokens,
	}
}
