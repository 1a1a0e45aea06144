package commands

import (
	"fmt"
	"time"

	"milesearch-backend/lib/searchlog"
	"milesearch-backend/lib/timezone"

	"github.com/spf13/cobra"
)

func newHistoryCmd(state *app) *cobra.Command {
	var db string
	var limit int

	open := func() (searchlog.Store, error) {
		path := db
		if path == "" {
			path = state.config.DB
		}
		return searchlog.Open(path)
	}

	historyCmd := &cobra.Command{
		Use:   "history [--db <path>] [--limit <n>]",
		Short: "Lists recorded searches, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			n := limit
			if n <= 0 {
				n = state.config.HistoryLimit
			}
			entries, err := store.List(cmd.Context(), n)
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	historyCmd.PersistentFlags().StringVar(&db, "db", "", "History database, defaults to the configured one.")
	historyCmd.Flags().IntVar(&limit, "limit", 0, "How many searches to show, defaults to the configured limit.")

	var before string
	pruneCmd := &cobra.Command{
		Use:   "prune --before <yyyy-mm-dd>",
		Short: "Deletes searches recorded before a day (JST).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.ParseInLocation(time.DateOnly, before, timezone.Location)
			if err != nil {
				return fmt.Errorf("invalid --before: %w", err)
			}

			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := store.Prune(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d searches\n", deleted)
			return nil
		},
	}
	pruneCmd.Flags().StringVar(&before, "before", "", "Day before which searches are deleted.")
	pruneCmd.MarkFlagRequired("before")

	historyCmd.AddCommand(pruneCmd)
	return historyCmd
}
