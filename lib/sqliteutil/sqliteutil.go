package sqliteutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	devenv "milesearch-backend/dev/env"

	_ "modernc.org/sqlite"
)

// Memory opens a database that lives as long as the *sql.DB.
const Memory = ":memory:"

// OpenDB opens (creating if needed) the sqlite database at `path` and applies
// `schema`, which should only contain idempotent statements. Paths may start
// with <dev_state>.
func OpenDB(schema, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("a path was not specified")
	}

	dbpath := path
	if path != Memory {
		var err error
		dbpath, err = devenv.ResolvePath(path)
		if err != nil {
			return nil, err
		}
		err = os.MkdirAll(filepath.Dir(dbpath), 0777)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database and sqlite only
	// supports a single writer anyway.
	// https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}

	if strings.TrimSpace(schema) != "" {
		_, err = db.Exec(schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}
