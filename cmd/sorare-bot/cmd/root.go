// Package cmd implements the sorare-bot CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/sorare-listing-bot/internal/config"
	"github.com/donaldgifford/sorare-listing-bot/pkg/logger"
)

const envPrefix = "SORARE_BOT"

// settings carries the persistent flags, resolved through viper so each
// can also be set as SORARE_BOT_<FLAG>.
type settings struct {
	v *viper.Viper
}

func (s *settings) configFile() string { return s.v.GetString("config") }
func (s *settings) envFile() string    { return s.v.GetString("env-file") }

// load reads the configuration and builds a logger writing to w, letting
// the --log-level and --log-format flags override the file.
func (s *settings) load(w io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(s.configFile(), s.envFile())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if lvl := s.v.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if format := s.v.GetString("log-format"); format != "" {
		cfg.Logging.Format = format
	}

	log := logger.NewWithWriter(w, cfg.Logging.Level, cfg.Logging.Format)
	return cfg, log, nil
}

// NewRootCommand builds the sorare-bot command tree. Invoked without a
// subcommand it runs the bot.
func NewRootCommand() *cobra.Command {
	s := &settings{v: viper.New()}

	root := &cobra.Command{
		Use:   "sorare-bot",
		Short: "Announce newly listed Sorare cards on Discord",
		Long: "sorare-bot signs in to Sorare, polls the most recently listed\n" +
			"football cards every few minutes and posts one Discord message\n" +
			"per listing.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "optional YAML config file")
	flags.String("env-file", config.DefaultEnvFile, "env file holding the credentials")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")

	cobra.CheckErr(s.v.BindPFlags(flags))
	s.v.SetEnvPrefix(envPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	run := runCommand(s)
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())

	root.AddCommand(run)
	root.AddCommand(listingsCommand(s))
	root.AddCommand(saltHashCommand())
	root.AddCommand(statusCommand())
	root.AddCommand(versionCommand())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
