package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/sorare-listing-bot/internal/api/client"
)

func statusCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)

	c := &cobra.Command{
		Use:   "status",
		Short: "Query a running bot's status server",
		Long: "status asks a bot started with status.listen set whether it is\n" +
			"authenticated and prints the listings of its last cycle.",
		Example: `  sorare-bot status
  sorare-bot status --addr http://bot.internal:9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c := apiclient.New(addr, apiclient.WithHTTPClient(&http.Client{Timeout: timeout}))
			out := cmd.OutOrStdout()

			ready, err := c.Ready(ctx)
			if err != nil {
				return err
			}
			state := "starting (not authenticated)"
			if ready {
				state = "running"
			}
			if _, err := fmt.Fprintf(out, "Bot: %s\n", state); err != nil {
				return err
			}

			resp, ok, err := c.LastListings(ctx)
			if err != nil {
				return err
			}
			if !ok {
				_, err := fmt.Fprintln(out, "No cycle completed yet.")
				return err
			}

			if _, err := fmt.Fprintf(out, "Last cycle: %s (%d listings)\n\n",
				resp.CompletedAt.Local().Format(time.DateTime), len(resp.Listings)); err != nil {
				return err
			}

			tw := newTabWriter(out)
			tw.writef("PLAYER\tPRICE\tCURRENCY\tURL\n")
			for i := range resp.Listings {
				tw.writef("%s\t%s\t%s\t%s\n",
					resp.Listings[i].PlayerName,
					resp.Listings[i].PriceAmount,
					resp.Listings[i].PriceCurrency,
					resp.Listings[i].URL,
				)
			}
			return tw.finish()
		},
	}
	c.Flags().StringVar(&addr, "addr", "http://localhost:9090", "status server base URL")
	c.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")

	return c
}
