package generation

import (
	"fmt"

	"github.com/phrazzld/flashgen/internal/domain"
)

// FallbackSize is the number of placeholder cards returned by Fallback.
const FallbackSize = 3

// Fallback returns placeholder flashcards that reference topic by name.
func Fallback(topic string) []domain.Flashcard {
	return []domain.Flashcard{
		{
			Question: fmt.Sprintf("What is the main concept of %s?", topic),
			Answer: fmt.Sprintf(
				"This is a sample answer about %s. The actual content would depend on the specific topic being studied.",
				topic,
			),
		},
		{
			Question: fmt.Sprintf("Why is %s important?", topic),
			Answer: fmt.Sprintf(
				"%s is important because it helps us understand key concepts and principles in this subject area.",
				topic,
			),
		},
		{
			Question: fmt.Sprintf("How can you apply knowledge of %s?", topic),
			Answer: fmt.Sprintf(
				"Knowledge of %s can be applied in various practical situations and helps build understanding of related concepts.",
				topic,
			),
		},
	}
}
