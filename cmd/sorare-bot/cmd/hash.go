package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

func saltHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "salt-hash <salt>",
		Short: "Print the sign-in hash of a password for a given salt",
		Long: "salt-hash reads a password from stdin and prints the bcrypt hash\n" +
			"the bot would send to Sorare for the given account salt.",
		Example: `  curl -s https://api.sorare.com/api/v1/users/me@example.com | jq -r .salt
  echo -n "$SORARE_PASSWORD" | sorare-bot salt-hash '$2a$11$abcdefghijklmnopqrstuv'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && password == "" {
				return fmt.Errorf("reading password from stdin: %w", err)
			}
			password = strings.TrimRight(password, "\r\n")

			hash, err := sorare.HashPassword(password, args[0])
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
