package generation

import "errors"

// Reasons a generation degraded to placeholder cards. They are reported on
// Result.FallbackReason and never returned from Generate.
var (
	// ErrGeneratorUnavailable means no model is configured or it is switched off.
	ErrGeneratorUnavailable = errors.New("text generator unavailable")

	// ErrInvocationFailed means the model call returned an error.
	ErrInvocationFailed = errors.New("text generation call failed")

	// ErrEmptyResponse means the model returned no text.
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrMalformedResponse means no valid flashcards could be extracted from the response.
	ErrMalformedResponse = errors.New("no valid flashcards in language model response")
)
