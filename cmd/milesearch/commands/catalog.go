package commands

import (
	"milesearch-backend/lib/scrapers/milesearch"

	"github.com/spf13/cobra"
)

func newCatalogCmd(state *app) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Lists the values a search accepts.",
	}

	var intlAirports bool
	airportsCmd := &cobra.Command{
		Use:   "airports [--dom|--intl]",
		Short: "Lists domestic airports, or international ones with their areas.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var airports []milesearch.Airport
			var err error
			if intlAirports {
				airports, err = state.client.IntlAirportsForEarning(cmd.Context())
			} else {
				airports, err = state.client.DomAirports(cmd.Context())
			}
			if err != nil {
				return err
			}
			renderAirports(cmd.OutOrStdout(), airports, intlAirports)
			return nil
		},
	}
	airportsCmd.Flags().Bool("dom", true, "List domestic airports.")
	airportsCmd.Flags().BoolVar(&intlAirports, "intl", false, "List international airports.")
	airportsCmd.MarkFlagsMutuallyExclusive("dom", "intl")

	var intlFares bool
	faresCmd := &cobra.Command{
		Use:   "fares [--dom|--intl]",
		Short: "Lists fares with the remarks of the fee table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fares []milesearch.Fare
			var err error
			if intlFares {
				fares, err = state.client.IntlFares(cmd.Context())
			} else {
				fares, err = state.client.DomFares(cmd.Context())
			}
			if err != nil {
				return err
			}
			renderFares(cmd.OutOrStdout(), fares)
			return nil
		},
	}
	faresCmd.Flags().Bool("dom", true, "List domestic fares.")
	faresCmd.Flags().BoolVar(&intlFares, "intl", false, "List international fares.")
	faresCmd.MarkFlagsMutuallyExclusive("dom", "intl")

	statusesCmd := &cobra.Command{
		Use:   "statuses",
		Short: "Lists membership statuses.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := state.client.Statuses(cmd.Context())
			if err != nil {
				return err
			}
			renderCodes(cmd.OutOrStdout(), statuses, func(s milesearch.Status) (string, string) {
				return s.Code, s.Name
			})
			return nil
		},
	}

	cardsCmd := &cobra.Command{
		Use:   "cards",
		Short: "Lists JAL card types.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := state.client.Cards(cmd.Context())
			if err != nil {
				return err
			}
			renderCodes(cmd.OutOrStdout(), cards, func(c milesearch.CardType) (string, string) {
				return c.Code, c.Name
			})
			return nil
		},
	}

	classesCmd := &cobra.Command{
		Use:   "classes",
		Short: "Lists domestic seat classes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classes, err := state.client.DomClasses(cmd.Context())
			if err != nil {
				return err
			}
			renderCodes(cmd.OutOrStdout(), classes, func(c milesearch.SeatClass) (string, string) {
				return c.Code, c.Name
			})
			return nil
		},
	}

	catalogCmd.AddCommand(airportsCmd, faresCmd, statusesCmd, cardsCmd, classesCmd)
	return catalogCmd
}
