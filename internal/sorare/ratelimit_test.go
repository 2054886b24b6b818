package sorare_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rate  float64
		burst int
		calls int
	}{
		{name: "allows calls within rate", rate: 100, burst: 10, calls: 3},
		{name: "allows burst", rate: 100, burst: 5, calls: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := sorare.NewRateLimiter(tt.rate, tt.burst)
			for range tt.calls {
				require.NoError(t, rl.Wait(context.Background()))
			}
		})
	}
}

func TestRateLimiter_ContextTimeout(t *testing.T) {
	t.Parallel()

	rl := sorare.NewRateLimiter(0.001, 1)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
}

func TestRateLimiter_Accessors(t *testing.T) {
	t.Parallel()

	rl := sorare.NewRateLimiter(2, 4)
	assert.InDelta(t, 2.0, rl.Limit(), 0.0001)
	assert.Equal(t, 4, rl.Burst())
}
