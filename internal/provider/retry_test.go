package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	value, err := withRetry(context.Background(), "test", func() (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	value, err := withRetry(context.Background(), "test", func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), "test", func() (string, error) {
		calls++
		return "", errors.New("persistent")
	})
	assert.Error(t, err)
	assert.Equal(t, retryMaxAttempts+1, calls)
}

func TestWithRetry_ContextCancellationStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := withRetry(ctx, "test", func() (string, error) {
		calls++
		return "", errors.New("boom")
	})
	assert.Error(t, err)
	assert.LessOrEqual(t, calls, retryMaxAttempts+1)
}
