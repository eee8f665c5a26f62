// Package domain contains the core business entities of the study service:
// users, flashcards and saved flashcard sets. It is independent of any
// storage or delivery mechanism.
package domain
