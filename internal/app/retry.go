package app

import (
	"context"
	"time"

	"github.com/corey/medreport/internal/domain/report"
	"github.com/corey/medreport/internal/ports"
	"github.com/rs/zerolog/log"
)

// maxBackoff caps the wait between two attempts.
const maxBackoff = 30 * time.Second

// RetryingProvider retries transient provider failures (unavailable, quota)
// with exponential backoff. Safety, auth, malformed-response and input errors
// are returned at once.
type RetryingProvider struct {
	Next       ports.AnalysisProvider
	MaxRetries int
	Backoff    time.Duration

	// sleep waits for d or until ctx is done; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ ports.AnalysisProvider = (*RetryingProvider)(nil)

// NewRetryingProvider wraps next.
func NewRetryingProvider(next ports.AnalysisProvider, maxRetries int, backoff time.Duration) *RetryingProvider {
	return &RetryingProvider{
		Next:       next,
		MaxRetries: maxRetries,
		Backoff:    backoff,
		sleep:      sleepContext,
	}
}

// Analyze calls the wrapped provider, retrying up to MaxRetries times.
func (p *RetryingProvider) Analyze(ctx context.Context, req ports.AnalysisRequest) (*report.Report, error) {
	wait := p.Backoff
	for attempt := 0; ; attempt++ {
		r, err := p.Next.Analyze(ctx, req)
		if err == nil || !ports.Retryable(err) || attempt >= p.MaxRetries {
			return r, err
		}

		log.Warn().Err(err).
			Int("attempt", attempt+1).
			Dur("backoff", wait).
			Msg("analysis provider failed, retrying")

		if err := p.sleep(ctx, wait); err != nil {
			return nil, err
		}
		wait *= 2
		if wait > maxBackoff {
			wait = maxBackoff
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
