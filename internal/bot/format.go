package bot

import (
	"fmt"

	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

// StartedMessage is sent once authentication succeeded.
const StartedMessage = "🟢 Sorare Bot Started Successfully"

// FormatListing renders the notification for a single listing.
func FormatListing(l sorare.Listing) string {
	return fmt.Sprintf("⚽ %s\n💰 %s %s\n🔗 %s",
		l.PlayerName,
		l.PriceAmount,
		l.PriceCurrency,
		l.URL(),
	)
}

// FetchFailedMessage is sent when a listings query fails.
func FetchFailedMessage(err error) string {
	return "⚠️ API request failed: " + err.Error()
}

// UnexpectedMessage is sent when a cycle ends in an unexpected error.
func UnexpectedMessage(err error) string {
	return "⚠️ Unexpected error: " + err.Error()
}

// CriticalMessage is sent before the bot gives up after a failed startup.
func CriticalMessage(err error) string {
	return "🔴 Critical failure: " + err.Error()
}
