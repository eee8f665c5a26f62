// Package postgres provides PostgreSQL implementations of the store
// interfaces, the connection helper used at start-up, and the goose
// migration runner for the embedded schema in the migrations directory.
//
// Stores accept a store.DBTX so the same code runs against a pool or inside
// a transaction; WithTx rebinds a store to a caller-managed transaction.
package postgres
