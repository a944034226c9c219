package cutout

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/sony/gobreaker"

	"forwardicons/internal/metrics"
	"forwardicons/internal/port"
)

// Candidate is one named provider eligible for failover.
type Candidate struct {
	Name    string
	Remover port.BackgroundRemover
}

type guardedCandidate struct {
	Candidate
	breaker *gobreaker.CircuitBreaker
}

// Shuffler permutes n elements through swap, with the rand.Shuffle signature.
type Shuffler func(n int, swap func(i, j int))

// FailoverRemover tries each candidate in a fresh random order per call and
// returns the first success. Candidates are never raced in parallel.
// It implements port.BackgroundRemover.
type FailoverRemover struct {
	candidates []guardedCandidate
	shuffle    Shuffler
	metrics    *metrics.Metrics
}

// Option configures a FailoverRemover.
type Option func(*failoverOptions)

type failoverOptions struct {
	shuffle          Shuffler
	metrics          *metrics.Metrics
	failureThreshold uint32
	openTimeout      time.Duration
}

// WithShuffle replaces the random order, e.g. with a no-op for deterministic tests.
func WithShuffle(s Shuffler) Option {
	return func(o *failoverOptions) { o.shuffle = s }
}

// WithMetrics records attempts and breaker state on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *failoverOptions) { o.metrics = m }
}

// WithBreaker sets how many consecutive failures open a provider's breaker and
// how long it stays open.
func WithBreaker(consecutiveFailures uint32, openFor time.Duration) Option {
	return func(o *failoverOptions) {
		o.failureThreshold = consecutiveFailures
		o.openTimeout = openFor
	}
}

// NoShuffle keeps candidates in configuration order.
func NoShuffle(int, func(i, j int)) {}

// NewFailoverRemover creates a FailoverRemover over candidates.
func NewFailoverRemover(candidates []Candidate, opts ...Option) *FailoverRemover {
	o := failoverOptions{
		shuffle:          rand.Shuffle,
		failureThreshold: 5,
		openTimeout:      60 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	f := &FailoverRemover{shuffle: o.shuffle, metrics: o.metrics}
	for _, c := range candidates {
		f.candidates = append(f.candidates, guardedCandidate{
			Candidate: c,
			breaker:   f.newBreaker(c.Name, o.failureThreshold, o.openTimeout),
		})
	}
	return f
}

func (f *FailoverRemover) newBreaker(name string, threshold uint32, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cutout-" + name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller giving up is not the provider's fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			slog.Warn("cutout.FailoverRemover: circuit breaker state changed",
				"provider", name, "from", from.String(), "to", to.String())
			if f.metrics != nil {
				f.metrics.CircuitState.WithLabelValues(name).Set(float64(to))
			}
		},
	})
}

// Len returns the number of configured candidates.
func (f *FailoverRemover) Len() int {
	return len(f.candidates)
}

func (f *FailoverRemover) RemoveBackground(ctx context.Context, input port.CutoutInput) (*port.CutoutOutput, error) {
	if len(f.candidates) == 0 {
		return nil, ErrNoProviders
	}

	order := make([]int, len(f.candidates))
	for i := range order {
		order[i] = i
	}
	f.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	failures := &FailoverError{}
	for _, idx := range order {
		c := f.candidates[idx]

		result, err := c.breaker.Execute(func() (interface{}, error) {
			out, err := c.Remover.RemoveBackground(ctx, input)
			if err == nil && (out == nil || len(out.Data) == 0) {
				err = errors.New("empty result")
			}
			return out, err
		})
		if err == nil {
			f.record(c.Name, metrics.OutcomeSuccess)
			out := result.(*port.CutoutOutput)
			if out.Provider == "" {
				out.Provider = c.Name
			}
			return out, nil
		}

		outcome := metrics.OutcomeFailure
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = metrics.OutcomeSkipped
		}
		f.record(c.Name, outcome)
		slog.WarnContext(ctx, "cutout.FailoverRemover: provider failed", "provider", c.Name, "error", err)

		var pErr *ProviderError
		if !errors.As(err, &pErr) {
			pErr = &ProviderError{Provider: c.Name, Err: err}
		}
		failures.Attempts = append(failures.Attempts, pErr)
	}

	return nil, failures
}

func (f *FailoverRemover) record(provider, outcome string) {
	if f.metrics != nil {
		f.metrics.CutoutAttempts.WithLabelValues(provider, outcome).Inc()
	}
}
