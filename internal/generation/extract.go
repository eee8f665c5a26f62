package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/phrazzld/flashgen/internal/domain"
)

const (
	fence         = "```"
	jsonFence     = "```json"
	flashcardsKey = "flashcards"
	questionKey   = "question"
	answerKey     = "answer"
)

// Step transforms model output on its way to a JSON payload. Steps receive
// trimmed text and return text; an empty return means nothing usable is left.
type Step func(text string) string

// UnwrapSteps is the ordered chain applied by Extract before parsing.
var UnwrapSteps = []Step{
	UnwrapJSONFence,
	UnwrapGenericFence,
	IsolateObject,
}

// Extract recovers flashcards from raw model output. It never fails: any
// text that cannot be unwrapped, parsed or matched yields an empty slice.
// Entries lacking a question or an answer are dropped; extra keys are ignored.
func Extract(text string) []domain.Flashcard {
	payload := Unwrap(text)
	if payload == "" {
		return nil
	}

	value, err := parseJSON(payload)
	if err != nil {
		return nil
	}

	return collectFlashcards(candidates(value))
}

// Unwrap runs text through UnwrapSteps, trimming before each step.
func Unwrap(text string) string {
	for _, step := range UnwrapSteps {
		text = step(strings.TrimSpace(text))
		if text == "" {
			return ""
		}
	}

	return strings.TrimSpace(text)
}

// UnwrapJSONFence returns the content between a ```json marker and the next
// fence. Text without the marker, or with an unclosed block, is returned as is.
func UnwrapJSONFence(text string) string {
	start := strings.Index(text, jsonFence)
	if start == -1 {
		return text
	}
	start += len(jsonFence)

	end := strings.Index(text[start:], fence)
	if end == -1 {
		return text
	}

	return strings.TrimSpace(text[start : start+end])
}

// UnwrapGenericFence returns the content between the first and last fence.
// A leading line that does not open a JSON object is treated as a language
// tag and dropped, unless the whole block is a JSON array.
func UnwrapGenericFence(text string) string {
	start := strings.Index(text, fence)
	if start == -1 {
		return text
	}
	start += len(fence)

	end := strings.LastIndex(text, fence)
	if end <= start {
		return text
	}

	inner := strings.TrimSpace(text[start:end])
	first, rest, found := strings.Cut(inner, "\n")
	if !startsObject(strings.TrimSpace(first)) && !isJSONArray(inner) {
		if !found {
			return ""
		}
		inner = strings.TrimSpace(rest)
	}

	return inner
}

// IsolateObject strips prose around a JSON object by keeping the text from
// the first '{' to the last '}'. Text that already opens a JSON object, or is
// a complete JSON array, is returned unchanged; text without braces yields "".
func IsolateObject(text string) string {
	if startsObject(text) || isJSONArray(text) {
		return text
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}

	return text[start : end+1]
}

func startsObject(text string) bool {
	return strings.HasPrefix(text, "{")
}

// isJSONArray reports whether text is exactly one well-formed JSON array.
// A leading '[' alone is not enough: prose such as "[output]" must still go
// through brace isolation.
func isJSONArray(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "[") && json.Valid([]byte(text))
}

// parseJSON decodes exactly one JSON value; trailing content is an error.
func parseJSON(payload string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	return value, nil
}

// candidates returns the list under the flashcards key, or the value itself
// when it is a bare array. Anything else has no candidates.
func candidates(value any) []any {
	if obj, ok := value.(map[string]any); ok {
		if inner, present := obj[flashcardsKey]; present {
			value = inner
		}
	}

	list, _ := value.([]any)
	return list
}

func collectFlashcards(entries []any) []domain.Flashcard {
	var cards []domain.Flashcard

	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		question, hasQuestion := obj[questionKey]
		answer, hasAnswer := obj[answerKey]
		if !hasQuestion || !hasAnswer {
			continue
		}

		card, err := domain.NewFlashcard(valueText(question), valueText(answer))
		if err != nil {
			continue
		}

		cards = append(cards, card)
	}

	return cards
}

// valueText renders a decoded JSON value as text. Strings are used as is,
// null becomes empty, so the entry is dropped, and other values keep their
// JSON form.
func valueText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}

	return strings.TrimSpace(buf.String())
}
