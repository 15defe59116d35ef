package provider

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/synthos/synthos/internal/logging"
)

const (
	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 10 * time.Second
	retryMaxElapsedTime  = 30 * time.Second
	retryMaxAttempts     = 3
)

// newCallBackoff builds the exponential backoff policy adapters use around
// their single underlying HTTP call for LLM API failures.
func newCallBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval
	b.MaxElapsedTime = retryMaxElapsedTime
	b.RandomizationFactor = 0.5
	b.Multiplier = 2.0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, retryMaxAttempts), ctx)
}

// withRetry runs call, retrying on failure per newCallBackoff. It is the
// only place in internal/provider that retries — the core transform
// pipeline itself never does (spec.md §4.3/§7).
func withRetry(ctx context.Context, providerName string, call func() (string, error)) (string, error) {
	var result string
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		value, err := call()
		if err != nil {
			logging.Logger.Warn().Err(err).Str("provider", providerName).Int("attempt", attempt).Msg("provider: call failed, retrying")
			return err
		}
		result = value
		return nil
	}, newCallBackoff(ctx))
	if err != nil {
		return "", err
	}
	return result, nil
}
