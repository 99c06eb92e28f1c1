package pipeline

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/events"
	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

// jitterFactor is the randomization applied to each wait when jitter is enabled
const jitterFactor = 0.5

// RetryPolicy bounds how a failing primary call is retried
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	Jitter          bool
}

// DefaultRetryPolicy allows 3 attempts waiting 0.5s then 1s
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		Multiplier:      2,
		MaxInterval:     5 * time.Second,
	}
}

// RetryPolicyFromConfig maps the retry settings, keeping defaults for zero values
func RetryPolicyFromConfig(cfg config.RetryConfig) RetryPolicy {
	p := DefaultRetryPolicy()
	if cfg.MaxAttempts > 0 {
		p.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.InitialInterval > 0 {
		p.InitialInterval = cfg.InitialInterval
	}
	if cfg.Multiplier >= 1 {
		p.Multiplier = cfg.Multiplier
	}
	if cfg.MaxInterval > 0 {
		p.MaxInterval = cfg.MaxInterval
	}
	p.Jitter = cfg.Jitter
	return p
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := &backoff.ExponentialBackOff{
		InitialInterval: p.InitialInterval,
		Multiplier:      p.Multiplier,
		MaxInterval:     p.MaxInterval,
		MaxElapsedTime:  0,
		Stop:            backoff.Stop,
		Clock:           backoff.SystemClock,
	}
	if p.Jitter {
		exp.RandomizationFactor = jitterFactor
	}
	exp.Reset()

	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// Retrier runs an operation under a RetryPolicy, retrying only errors accepted
// by its predicate.
type Retrier struct {
	policy    RetryPolicy
	retryable func(error) bool
	emitter   events.Emitter
	logger    *zap.Logger
	newTimer  func() backoff.Timer
}

// RetrierOption configures a Retrier
type RetrierOption func(*Retrier)

// WithPredicate replaces the default entities.IsTransient predicate
func WithPredicate(fn func(error) bool) RetrierOption {
	return func(r *Retrier) {
		r.retryable = fn
	}
}

// WithTimer sets the timer factory used for backoff waits
func WithTimer(fn func() backoff.Timer) RetrierOption {
	return func(r *Retrier) {
		r.newTimer = fn
	}
}

// NewRetrier creates a Retrier
func NewRetrier(policy RetryPolicy, emitter events.Emitter, logger *zap.Logger, opts ...RetrierOption) *Retrier {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Retrier{
		policy:    policy,
		retryable: entities.IsTransient,
		emitter:   emitter,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the configured policy
func (r *Retrier) Policy() RetryPolicy {
	return r.policy
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// attempts are used up. The last error is returned unchanged.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !r.retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		kind := entities.TransientKindOf(err)
		jobcontext.Logger(ctx, r.logger).Warn("generator call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.policy.MaxAttempts),
			zap.Duration("wait", wait),
			zap.String("error_kind", string(kind)),
			zap.Error(err),
		)
		events.Emit(r.emitter, entities.Event{
			Type:          entities.EventRetryAttempt,
			AttemptNumber: attempt,
			WaitSeconds:   wait.Seconds(),
			ErrorKind:     kind,
			RequestID:     jobcontext.GetRequestID(ctx),
		})
	}

	var timer backoff.Timer
	if r.newTimer != nil {
		timer = r.newTimer()
	}
	return backoff.RetryNotifyWithTimer(operation, r.policy.backOff(ctx), notify, timer)
}
