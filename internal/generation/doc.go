// Package generation turns a study topic into a list of flashcards using a
// language model.
//
// A Pipeline builds a prompt, sends it to a TextGenerator, and extracts
// question/answer pairs from the returned text. Model output is treated as
// untrusted: Extract unwraps fenced or prose-wrapped JSON through a chain of
// small text steps and keeps only well-formed entries. Whenever the model is
// unavailable, the call fails, or nothing usable comes back, the pipeline
// returns a fixed set of placeholder cards that mention the topic, so
// Generate always yields at least one flashcard.
package generation
