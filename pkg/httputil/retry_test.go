package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		failures  int  // attempts that fail before success
		retryable bool // whether the failures are retryable
		attempts  int
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "FirstAttemptSucceeds",
			failures:  0,
			attempts:  3,
			wantCalls: 1,
		},
		{
			name:      "RecoversAfterRetryableFailures",
			failures:  2,
			retryable: true,
			attempts:  3,
			wantCalls: 3,
		},
		{
			name:      "NonRetryableFailsFast",
			failures:  2,
			retryable: false,
			attempts:  3,
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "ExhaustsAttempts",
			failures:  5,
			retryable: true,
			attempts:  3,
			wantCalls: 3,
			wantErr:   true,
		},
		{
			name:      "ZeroAttemptsStillRunsOnce",
			failures:  0,
			attempts:  0,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			fn := func() error {
				calls++
				if calls <= tt.failures {
					err := errors.New("boom")
					if tt.retryable {
						return Retryable(err)
					}
					return err
				}
				return nil
			}

			err := Retry(context.Background(), tt.attempts, time.Millisecond, fn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Retry error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return Retryable(errors.New("boom"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}

	base := errors.New("timeout")
	wrapped := Retryable(base)
	if !IsRetryable(wrapped) {
		t.Error("wrapped error should be retryable")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
	if IsRetryable(base) {
		t.Error("bare error should not be retryable")
	}
}
