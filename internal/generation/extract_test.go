package generation

import (
	"testing"

	"github.com/phrazzld/flashgen/internal/domain"
	"github.com/stretchr/testify/assert"
)

const cleanPayload = `{"flashcards":[{"question":"  What is ATP? ","answer":"The energy currency of the cell.\n"},{"question":"Where does photosynthesis happen?","answer":"In the chloroplasts."}]}`

var cleanCards = []domain.Flashcard{
	{Question: "What is ATP?", Answer: "The energy currency of the cell."},
	{Question: "Where does photosynthesis happen?", Answer: "In the chloroplasts."},
}

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Flashcard
	}{
		{
			name: "clean payload",
			text: cleanPayload,
			want: cleanCards,
		},
		{
			name: "json fence",
			text: "```json\n" + cleanPayload + "\n```",
			want: cleanCards,
		},
		{
			name: "json fence with surrounding prose",
			text: "Sure! Here are your cards:\n```json\n" + cleanPayload + "\n```\nGood luck studying.",
			want: cleanCards,
		},
		{
			name: "generic fence with language tag",
			text: "```javascript\n" + cleanPayload + "\n```",
			want: cleanCards,
		},
		{
			name: "generic fence without tag",
			text: "```\n" + cleanPayload + "\n```",
			want: cleanCards,
		},
		{
			name: "prose wrapped",
			text: "Here you go:\n" + cleanPayload + "\nEnjoy!",
			want: cleanCards,
		},
		{
			name: "bare array",
			text: `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`,
			want: []domain.Flashcard{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}},
		},
		{
			name: "fenced bare array",
			text: "```json\n[{\"question\":\"Q1\",\"answer\":\"A1\"}]\n```",
			want: []domain.Flashcard{{Question: "Q1", Answer: "A1"}},
		},
		{
			name: "entry missing answer is dropped",
			text: `{"flashcards":[{"question":"Q1","answer":"A1"},{"question":"Q2"}]}`,
			want: []domain.Flashcard{{Question: "Q1", Answer: "A1"}},
		},
		{
			name: "entry missing question is dropped",
			text: `{"flashcards":[{"answer":"A0"},{"question":"Q1","answer":"A1"}]}`,
			want: []domain.Flashcard{{Question: "Q1", Answer: "A1"}},
		},
		{
			name: "extra keys are ignored",
			text: `{"flashcards":[{"question":"Q1","answer":"A1","difficulty":"easy","tags":["x"]}]}`,
			want: []domain.Flashcard{{Question: "Q1", Answer: "A1"}},
		},
		{
			name: "non-object entries are dropped",
			text: `{"flashcards":["Q1",42,null,{"question":"Q2","answer":"A2"}]}`,
			want: []domain.Flashcard{{Question: "Q2", Answer: "A2"}},
		},
		{
			name: "blank values are dropped",
			text: `{"flashcards":[{"question":"   ","answer":"A1"},{"question":"Q2","answer":null}]}`,
			want: nil,
		},
		{
			name: "non-string values become text",
			text: `{"flashcards":[{"question":"What is 6 x 7?","answer":42},{"question":true,"answer":["a","b"]}]}`,
			want: []domain.Flashcard{
				{Question: "What is 6 x 7?", Answer: "42"},
				{Question: "true", Answer: `["a","b"]`},
			},
		},
		{
			name: "large numbers keep their literal form",
			text: `{"flashcards":[{"question":"Avogadro?","answer":6.02214076e23}]}`,
			want: []domain.Flashcard{{Question: "Avogadro?", Answer: "6.02214076e23"}},
		},
		{
			name: "prose opening with a bracket",
			text: "[Flashcards below]\n" + cleanPayload + "\nEnjoy!",
			want: cleanCards,
		},
		{
			name: "generic fence with bracketed first line",
			text: "```\n[output]\n" + cleanPayload + "\n```",
			want: cleanCards,
		},
		{
			name: "multi-line bare array in generic fence",
			text: "```\n[\n  {\"question\":\"Q1\",\"answer\":\"A1\"}\n]\n```",
			want: []domain.Flashcard{{Question: "Q1", Answer: "A1"}},
		},
		{name: "not json at all", text: "not json at all", want: nil},
		{name: "empty text", text: "", want: nil},
		{name: "whitespace only", text: " \n\t ", want: nil},
		{name: "invalid json between braces", text: "{question: Q1, answer: A1}", want: nil},
		{name: "trailing garbage", text: `{"flashcards":[]} {"x":1}`, want: nil},
		{name: "flashcards not a list", text: `{"flashcards":{"question":"Q","answer":"A"}}`, want: nil},
		{name: "object without flashcards key", text: `{"question":"Q","answer":"A"}`, want: nil},
		{name: "empty flashcards list", text: `{"flashcards":[]}`, want: nil},
		{name: "unclosed json fence without braces", text: "```json\nno payload here", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()

	text := "Here you go:\n```json\n" + cleanPayload + "\n```"

	first := Extract(text)
	second := Extract(text)

	assert.Equal(t, first, second)
	assert.Equal(t, cleanCards, first)
}

func TestExtractFencedMatchesUnfenced(t *testing.T) {
	t.Parallel()

	payload := `{"flashcards":[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},{"question":"Q3","answer":"A3"}]}`

	assert.Equal(t, Extract(payload), Extract("```json\n"+payload+"\n```"))
	assert.Equal(t, Extract(payload), Extract("```\n"+payload+"\n```"))
	assert.Equal(t, Extract(payload), Extract("Intro text.\n"+payload+"\nOutro text."))
}

func TestUnwrapJSONFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"takes first block", "```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```", `{"a":1}`},
		{"unclosed", "```json\n{\"a\":1}", "```json\n{\"a\":1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, UnwrapJSONFence(tt.in))
		})
	}
}

func TestUnwrapGenericFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"single fence", "``` {\"a\":1}", "``` {\"a\":1}"},
		{"language tag dropped", "```js\n{\"a\":1}\n```", `{"a":1}`},
		{"object on first line kept", "```{\"a\":1}```", `{"a":1}`},
		{"array on first line kept", "```\n[1,2]\n```", `[1,2]`},
		{"bracketed tag dropped", "```\n[output]\n{\"a\":1}\n```", `{"a":1}`},
		{"first to last fence", "```\n{\"a\":\"```\"}\n```", "{\"a\":\"```\"}"},
		{"tag only", "```python```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, UnwrapGenericFence(tt.in))
		})
	}
}

func TestIsolateObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already object", `{"a":1} trailing`, `{"a":1} trailing`},
		{"already array", `[{"a":1}]`, `[{"a":1}]`},
		{"bracketed prose before object", "[note] {\"a\":1} end", `{"a":1}`},
		{"prose around object", `Here: {"a":{"b":1}} done`, `{"a":{"b":1}}`},
		{"no braces", "nothing here", ""},
		{"only opening brace", "oops { here", ""},
		{"reversed braces", "} then {", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsolateObject(tt.in))
		})
	}
}
