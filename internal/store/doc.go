// Package store defines interfaces for data persistence operations on users
// and flashcard sets, along with the shared errors and transaction helper
// used by their implementations. Business logic depends on these interfaces
// rather than on a specific database.
package store
