package commands

import (
	"context"
	"log/slog"

	"milesearch-backend/lib/scrapers/milesearch"
	"milesearch-backend/lib/searchlog"

	"github.com/spf13/cobra"
)

type searchFlags struct {
	from   string
	to     string
	class  string
	fare   string
	card   string
	status string
	record bool
	db     string
}

func (f *searchFlags) register(cmd *cobra.Command, withClass bool) {
	cmd.Flags().StringVar(&f.from, "from", "", "Departure airport code.")
	cmd.Flags().StringVar(&f.to, "to", "", "Arrival airport code.")
	cmd.Flags().StringVar(&f.fare, "fare", "", "Fare code, as listed by catalog fares.")
	cmd.Flags().StringVar(&f.card, "card", "", "JAL card code, as listed by catalog cards.")
	cmd.Flags().StringVar(&f.status, "status", "", "Membership status code, as listed by catalog statuses.")
	cmd.Flags().BoolVar(&f.record, "record", false, "Record the search in the history database.")
	cmd.Flags().StringVar(&f.db, "db", "", "History database to record to, defaults to the configured one.")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("fare")
	if withClass {
		cmd.Flags().StringVar(&f.class, "class", "", "Seat class code, as listed by catalog classes.")
		cmd.MarkFlagRequired("class")
	}
}

func (f *searchFlags) dbPath(state *app) string {
	if f.db != "" {
		return f.db
	}
	return state.config.DB
}

func (f *searchFlags) save(ctx context.Context, state *app, kind searchlog.Kind, res milesearch.Result) error {
	if !f.record && f.db == "" {
		return nil
	}
	store, err := searchlog.Open(f.dbPath(state))
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(ctx, searchlog.Entry{
		Kind:   kind,
		From:   f.from,
		To:     f.to,
		Class:  f.class,
		Fare:   f.fare,
		Card:   f.card,
		Status: f.status,
		Result: res,
	})
	if err != nil {
		return err
	}
	slog.Debug("recorded search", "id", id)
	return nil
}

func newSearchCmd(state *app) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Computes the mileage of a flight.",
	}

	var dom searchFlags
	domCmd := &cobra.Command{
		Use:   "dom --from <code> --to <code> --class <code> --fare <code> [--card <code>] [--status <code>] [--record] [--db <path>]",
		Short: "Searches a domestic flight.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := state.client.DomSearch(cmd.Context(), milesearch.DomQuery{
				From:   dom.from,
				To:     dom.to,
				Class:  dom.class,
				Fare:   dom.fare,
				Card:   dom.card,
				Status: dom.status,
			})
			if err != nil {
				return err
			}
			renderResult(cmd.OutOrStdout(), res)
			return dom.save(cmd.Context(), state, searchlog.KindDom, res)
		},
	}
	dom.register(domCmd, true)

	var intl searchFlags
	intlCmd := &cobra.Command{
		Use:   "intl --from <code> --to <code> --fare <code> [--card <code>] [--status <code>] [--record] [--db <path>]",
		Short: "Searches an international flight.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := state.client.IntlSearch(cmd.Context(), milesearch.IntlQuery{
				From:   intl.from,
				To:     intl.to,
				Fare:   intl.fare,
				Card:   intl.card,
				Status: intl.status,
			})
			if err != nil {
				return err
			}
			renderResult(cmd.OutOrStdout(), res)
			return intl.save(cmd.Context(), state, searchlog.KindIntl, res)
		},
	}
	intl.register(intlCmd, false)

	searchCmd.AddCommand(domCmd, intlCmd)
	return searchCmd
}
