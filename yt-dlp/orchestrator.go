package ytdlp

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Adarshn09/YoutubeDownloder1/models"
	"github.com/Adarshn09/YoutubeDownloder1/retry"
)

// Orchestrator drives the strategy catalog against the engine until one
// identity gets through. Two retry levels with different jobs:
//
//   - inner sweep: which identity to present. Independent hypotheses, tried
//     in fixed order with a short flat delay, short-circuiting on success.
//   - outer loop: transient infrastructure failure. The whole sweep is
//     repeated with exponential backoff to give the upstream time to recover.
type Orchestrator struct {
	Engine     Engine
	Strategies []Strategy
	Retry      retry.Config  // outer loop
	SweepDelay time.Duration // flat delay between strategies
}

func NewOrchestrator(engine Engine) *Orchestrator {
	return &Orchestrator{
		Engine:     engine,
		Strategies: Catalog(),
		Retry:      retry.DefaultConfig(),
		SweepDelay: 2 * time.Second,
	}
}

// ExtractionError is the terminal failure after the full retry budget.
type ExtractionError struct {
	Attempts   int // outer attempts consumed
	Strategies int // total strategy invocations
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed after %d attempts (%d strategies tried): %v", e.Attempts, e.Strategies, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extract obtains metadata for url, or fails terminally with the last and
// most specific error observed.
func (o *Orchestrator) Extract(ctx context.Context, url string) (*models.RawInfo, error) {
	var (
		info     *models.RawInfo
		attempts int
		tried    int
	)

	err := retry.Do(ctx, o.Retry, func(err error) bool { return !IsTerminal(err) }, func(ctx context.Context) error {
		attempts++
		got, n, err := o.sweep(ctx, url, func(s Strategy) (*models.RawInfo, error) {
			return o.Engine.ExtractInfo(ctx, url, s)
		})
		tried += n
		if err != nil {
			log.Printf("[Orchestrator] attempt %d/%d failed: %v", attempts, o.Retry.MaxAttempts, err)
			return err
		}
		info = got
		return nil
	})
	if err != nil {
		return nil, &ExtractionError{Attempts: attempts, Strategies: tried, Err: err}
	}
	return info, nil
}

// Download fetches media for url into outputTemplate, sweeping the catalog
// once. Download failures rarely clear up within a session, so there is no
// outer backoff here; the caller surfaces the classified error instead.
func (o *Orchestrator) Download(ctx context.Context, url, formatSpec, outputTemplate string, onLine func(string)) error {
	_, _, err := o.sweep(ctx, url, func(s Strategy) (*models.RawInfo, error) {
		return nil, o.Engine.Download(ctx, url, formatSpec, outputTemplate, s, onLine)
	})
	return err
}

// sweep iterates the catalog in fixed order, invoking call per strategy.
// First success wins; terminal classifications stop the sweep immediately
// because no other identity can change them. Returns the strategies consumed.
func (o *Orchestrator) sweep(ctx context.Context, url string, call func(Strategy) (*models.RawInfo, error)) (*models.RawInfo, int, error) {
	var lastErr error
	for i, s := range o.Strategies {
		if i > 0 && o.SweepDelay > 0 {
			if err := retry.Sleep(ctx, o.SweepDelay); err != nil {
				return nil, i, err
			}
		}
		info, err := call(s)
		if err == nil {
			if i > 0 {
				log.Printf("[Orchestrator] strategy %q succeeded for %s", s.Name, url)
			}
			return info, i + 1, nil
		}
		lastErr = err
		log.Printf("[Orchestrator] strategy %q failed for %s: %v", s.Name, url, err)
		if IsTerminal(err) {
			return nil, i + 1, err
		}
	}
	return nil, len(o.Strategies), lastErr
}
