package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/sorare-listing-bot/internal/api"
	"github.com/donaldgifford/sorare-listing-bot/internal/bot"
	"github.com/donaldgifford/sorare-listing-bot/internal/config"
	"github.com/donaldgifford/sorare-listing-bot/internal/notify"
	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

const shutdownTimeout = 10 * time.Second

func runCommand(s *settings) *cobra.Command {
	var dryRun bool

	c := &cobra.Command{
		Use:   "run",
		Short: "Run the polling bot until interrupted",
		Example: `  sorare-bot run
  sorare-bot run --env-file prod.env --log-format json
  sorare-bot run --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := s.load(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runBot(ctx, cfg, log, dryRun)
		},
	}
	c.Flags().BoolVar(&dryRun, "dry-run", false, "log notifications instead of posting them")

	return c
}

// runBot wires the Sorare clients, the notifier and the optional status
// server around a bot and runs it until ctx is canceled.
func runBot(ctx context.Context, cfg *config.Config, log *slog.Logger, dryRun bool) error {
	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		log.Warn("credentials not set", "missing", missing)
	}

	auth := newAuthenticator(cfg)
	cards := newCardsClient(cfg, log)

	var n notify.Notifier
	if dryRun {
		n = notify.NewNoOpNotifier(log)
	} else {
		n = notify.NewDiscordNotifier(cfg.Discord.WebhookURL, notify.WithTimeout(cfg.Discord.Timeout))
	}

	b := bot.New(cfg.Credentials(), auth, cards, n,
		bot.WithLogger(log),
		bot.WithPollInterval(cfg.Schedule.PollInterval),
		bot.WithRetryDelay(cfg.Schedule.RetryDelay),
	)

	if cfg.Status.Listen != "" {
		shutdown := startStatusServer(cfg.Status.Listen, b, log)
		defer shutdown()
	}

	log.Info("starting sorare bot",
		"api_url", cfg.Sorare.APIURL,
		"graphql_url", cfg.Sorare.GraphQLURL,
		"dry_run", dryRun,
	)

	return b.Run(ctx)
}

func newAuthenticator(cfg *config.Config) *sorare.PasswordAuthenticator {
	return sorare.NewPasswordAuthenticator(
		sorare.WithAPIURL(cfg.Sorare.APIURL),
		sorare.WithSignInURL(cfg.Sorare.GraphQLURL),
		sorare.WithAudience(cfg.Sorare.Audience),
		sorare.WithHTTPClient(&http.Client{Timeout: cfg.Sorare.Timeout}),
	)
}

func newCardsClient(cfg *config.Config, log *slog.Logger) *sorare.CardsClient {
	return sorare.NewCardsClient(
		sorare.WithGraphQLURL(cfg.Sorare.GraphQLURL),
		sorare.WithCardsHTTPClient(&http.Client{Timeout: cfg.Sorare.Timeout}),
		sorare.WithRateLimiter(sorare.NewRateLimiter(
			cfg.Sorare.RateLimit.PerSecond,
			cfg.Sorare.RateLimit.Burst,
		)),
		sorare.WithLogger(log),
	)
}

// startStatusServer serves the status endpoints in the background and
// returns a function that shuts the server down.
func startStatusServer(addr string, src api.StatusSource, log *slog.Logger) func() {
	e := api.NewServer(src, log)

	log.Info("starting status server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("status server error", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(ctx); err != nil {
			log.Error("shutting down status server", "error", fmt.Errorf("shutdown: %w", err))
			return
		}
		log.Info("status server stopped")
	}
}
