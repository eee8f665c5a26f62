//go:build integration

// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests run against the database named by FLASHGEN_TEST_DB_URL, falling back
// to DATABASE_URL. When neither is set the test is skipped. The schema is
// migrated once per connection and every test runs inside a transaction that
// is rolled back on completion, so tests may run in parallel:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)
//	        // ...
//	    })
//	}
package testdb
