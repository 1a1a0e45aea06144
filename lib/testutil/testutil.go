package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"milesearch-backend/lib/sqliteutil"
	"milesearch-backend/lib/telemetry"
)

// SetupTelemetry installs non-exporting trace and metric providers for the
// duration of a test so spans created by the code under test are recorded.
func SetupTelemetry(t testing.TB, name string) {
	tel, err := telemetry.Setup(context.Background(), fmt.Sprintf("test:%s", name), telemetry.Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		tel.Shutdown(context.Background())
	})
}

// OpenMemoryDB opens an in-memory sqlite database with `schema` applied, it
// is closed when the test ends.
func OpenMemoryDB(t testing.TB, schema string) *sql.DB {
	db, err := sqliteutil.OpenDB(schema, sqliteutil.Memory)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
