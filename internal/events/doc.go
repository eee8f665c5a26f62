// Package events lets services announce what happened without knowing who
// listens.
//
// Services publish an Event through an EventEmitter; handlers registered on
// an InMemoryEventEmitter receive it synchronously, in registration order.
// GenerationAuditHandler is the built-in handler that records degraded
// flashcard generations.
package events
