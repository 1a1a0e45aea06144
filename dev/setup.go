package main

import (
	"log/slog"

	devenv "milesearch-backend/dev/env"
	"milesearch-backend/lib/searchlog"
)

// historyDB matches the default `db` of milesearch.json5.
const historyDB = devenv.StatePrefix + "/milesearch.db"

func CreateHistoryDB() error {
	store, err := searchlog.Open(historyDB)
	if err != nil {
		return err
	}
	slog.Info("created search history", "path", historyDB)
	return store.Close()
}

func PrintConfigLocations() {
	slog.Info("the cli reads milesearch.json5 (and milesearch.local.json5) from the closest parent directory, see cmd/milesearch/commands/config.go for the fields.")
	slog.Info("telemetry.json5 sets the otlp endpoints, nothing is exported without it.")
}
