package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

func listingsCommand(s *settings) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   "listings",
		Short: "Sign in once and print the current listings",
		Long: "listings performs a single authentication and fetch, printing the\n" +
			"listings the bot would announce without posting anything.",
		Example: `  sorare-bot listings
  sorare-bot listings --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "table" && output != "json" {
				return fmt.Errorf("unknown output format %q (want table or json)", output)
			}

			cfg, log, err := s.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			creds := cfg.Credentials()

			session, err := newAuthenticator(cfg).Authenticate(ctx, creds.Email, creds.Password)
			if err != nil {
				return fmt.Errorf("authenticating: %w", err)
			}

			listings, err := newCardsClient(cfg, log).FetchListings(ctx, session)
			if err != nil {
				return err
			}

			if output == "json" {
				return outputJSON(cmd.OutOrStdout(), listings)
			}
			if len(listings) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No listings found.")
				return err
			}
			return printListingsTable(cmd.OutOrStdout(), listings)
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")

	return c
}

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printListingsTable(w io.Writer, listings []sorare.Listing) error {
	tw := newTabWriter(w)
	tw.writef("PLAYER\tPRICE\tCURRENCY\tURL\n")
	for i := range listings {
		tw.writef("%s\t%s\t%s\t%s\n",
			listings[i].PlayerName,
			listings[i].PriceAmount,
			listings[i].PriceCurrency,
			listings[i].URL(),
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
