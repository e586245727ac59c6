// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests calling GetTestDBWithT are skipped unless
// FORGET_TEST_DATABASE_URL (or DATABASE_URL) is set, so the default test run
// needs no database.
//
// Typical use:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.SetupTestDatabaseSchema(t, db)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		s := postgres.NewPostgresFaultStore(tx)
//		// ...
//	})
package testdb
