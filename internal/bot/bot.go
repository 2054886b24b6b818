// Package bot runs the authenticate-once, poll-forever loop that announces
// freshly listed Sorare cards on a webhook.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/sorare-listing-bot/internal/config"
	"github.com/donaldgifford/sorare-listing-bot/internal/metrics"
	"github.com/donaldgifford/sorare-listing-bot/internal/notify"
	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

const (
	defaultPollInterval = 5 * time.Minute
	defaultRetryDelay   = 60 * time.Second
)

// CycleError wraps any failure that ends a running cycle early, including
// recovered panics. The loop backs off and carries on.
type CycleError struct {
	Err error
}

func (e *CycleError) Error() string {
	return e.Err.Error()
}

func (e *CycleError) Unwrap() error {
	return e.Err
}

// SleepFunc pauses for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Bot authenticates once and then repeatedly fetches listings and sends one
// notification per listing. The session is never refreshed: an expired
// token shows up as a fetch failure on every cycle.
type Bot struct {
	creds    config.Credentials
	auth     sorare.Authenticator
	fetcher  sorare.ListingFetcher
	notifier notify.Notifier
	log      *slog.Logger

	pollInterval time.Duration
	retryDelay   time.Duration
	sleep        SleepFunc

	session atomic.Pointer[sorare.Session]
	last    atomic.Pointer[snapshot]
}

// snapshot is the outcome of the most recent completed cycle.
type snapshot struct {
	listings    []sorare.Listing
	completedAt time.Time
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) {
		b.log = l
	}
}

// WithPollInterval sets the pause between successful cycles.
func WithPollInterval(d time.Duration) Option {
	return func(b *Bot) {
		b.pollInterval = d
	}
}

// WithRetryDelay sets the pause after a cycle that failed unexpectedly.
func WithRetryDelay(d time.Duration) Option {
	return func(b *Bot) {
		b.retryDelay = d
	}
}

// WithSleepFunc overrides how the loop waits between cycles, for testing.
func WithSleepFunc(f SleepFunc) Option {
	return func(b *Bot) {
		b.sleep = f
	}
}

// New creates a Bot with injected dependencies.
func New(
	creds config.Credentials,
	a sorare.Authenticator,
	f sorare.ListingFetcher,
	n notify.Notifier,
	opts ...Option,
) *Bot {
	b := &Bot{
		creds:        creds,
		auth:         a,
		fetcher:      f,
		notifier:     n,
		log:          slog.Default(),
		pollInterval: defaultPollInterval,
		retryDelay:   defaultRetryDelay,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Ready reports whether the bot holds an authenticated session.
func (b *Bot) Ready() bool {
	return b.session.Load() != nil
}

// LastListings returns the listings announced by the most recent completed
// cycle and when it completed. ok is false until a cycle completes.
func (b *Bot) LastListings() (listings []sorare.Listing, completedAt time.Time, ok bool) {
	snap := b.last.Load()
	if snap == nil {
		return nil, time.Time{}, false
	}
	return snap.listings, snap.completedAt, true
}

// Run authenticates and then polls until ctx is canceled. An authentication
// failure is terminal: one critical alert is sent and the error returned.
// Once running, Run only returns (with nil) when ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	session, err := b.auth.Authenticate(ctx, b.creds.Email, b.creds.Password)
	if err != nil {
		b.log.Error("critical failure", "error", err)
		// The alert goes out even when startup was interrupted.
		b.alert(context.WithoutCancel(ctx), CriticalMessage(err))
		return fmt.Errorf("authenticating: %w", err)
	}

	b.session.Store(session)
	metrics.Authenticated.Set(1)

	b.alert(ctx, StartedMessage)
	b.log.Info("bot is running",
		"poll_interval", b.pollInterval,
		"retry_delay", b.retryDelay,
	)

	for {
		delay := b.pollInterval

		if err := b.safeCycle(ctx, session); err != nil {
			if ctx.Err() != nil {
				break
			}
			metrics.CycleErrorsTotal.Inc()
			b.log.Error("unexpected cycle error", "error", err)
			b.alert(ctx, UnexpectedMessage(err))
			delay = b.retryDelay
		}

		if err := b.sleep(ctx, delay); err != nil {
			break
		}
	}

	b.log.Info("bot stopped", "reason", context.Cause(ctx))
	return nil
}

// RunCycle fetches the current listings and sends one message per listing.
// Fetch failures are reported and absorbed; the returned error is reserved
// for failures the loop should back off from.
func (b *Bot) RunCycle(ctx context.Context, s *sorare.Session) error {
	start := time.Now()
	log := b.log.With("cycle_id", uuid.NewString())

	metrics.CyclesTotal.Inc()
	defer func() {
		metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	listings := b.fetch(ctx, log, s)
	if err := ctx.Err(); err != nil {
		return err
	}

	for i := range listings {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := FormatListing(listings[i])
		log.Info("new listing",
			"player", listings[i].PlayerName,
			"price", listings[i].PriceAmount,
			"currency", listings[i].PriceCurrency,
			"url", listings[i].URL(),
		)
		b.alert(ctx, msg)
	}

	b.last.Store(&snapshot{listings: listings, completedAt: time.Now()})
	metrics.LastCycleTimestamp.SetToCurrentTime()
	log.Info("cycle complete",
		"listings", len(listings),
		"duration", time.Since(start),
	)

	return nil
}

// safeCycle runs a cycle, converting errors and panics into *CycleError.
func (b *Bot) safeCycle(ctx context.Context, s *sorare.Session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)

			b.log.Error("panic recovered",
				"error", fmt.Sprint(r),
				"stack", string(buf[:n]),
			)

			err = &CycleError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if cycleErr := b.RunCycle(ctx, s); cycleErr != nil {
		return &CycleError{Err: cycleErr}
	}
	return nil
}

// fetch never fails: errors are logged, alerted and replaced by an empty
// result.
func (b *Bot) fetch(ctx context.Context, log *slog.Logger, s *sorare.Session) []sorare.Listing {
	listings, err := b.fetcher.FetchListings(ctx, s)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil
		}
		metrics.FetchFailuresTotal.Inc()
		log.Warn("API request failed", "error", err)
		b.alert(ctx, FetchFailedMessage(err))
		return nil
	}

	metrics.ListingsFetchedTotal.Add(float64(len(listings)))
	log.Debug("fetched listings", "count", len(listings))
	return listings
}

// alert sends msg best-effort. Failures are logged and counted, never
// returned.
func (b *Bot) alert(ctx context.Context, msg string) {
	if err := b.notifier.Send(ctx, msg); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		b.log.Warn("failed to send discord alert", "error", err)
		return
	}
	metrics.NotificationsSentTotal.Inc()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
