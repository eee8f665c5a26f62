// Package service contains the application use cases. It coordinates the
// generation pipeline, the stores defined in internal/store and the event
// emitter, and never depends on a concrete storage or transport.
//
// Service methods return sentinel errors such as ErrFlashcardSetNotFound for
// expected conditions and wrap everything else in FlashcardSetServiceError.
// Domain validation errors pass through unchanged so the API layer can report
// them as bad requests.
package service
