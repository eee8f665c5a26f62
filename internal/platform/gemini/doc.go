// Package gemini adapts Google's Gemini API to the generation.TextGenerator
// interface.
//
// The Client sends one GenerateContent request per call, carrying the
// system instruction, temperature and output token cap from the request, and
// returns the concatenated text of the first candidate. It performs no retry
// and no parsing; the generation pipeline decides what to do with the text or
// the error.
package gemini
