package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// Mode distinguishes a first generation from a repair call
type Mode string

const (
	ModePrimary Mode = "primary"
	ModeRepair  Mode = "repair"
)

// Request is one rendered prompt for a generator
type Request struct {
	Mode    Mode
	Variant entities.Variant
	System  string
	Prompt  string
}

// Completer sends a single prompt to a model and returns the raw text reply
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Options tunes a Client
type Options struct {
	Timeout       time.Duration
	RepairTimeout time.Duration
}

// Client turns a Completer into a generator: one attempt per call, bounded by
// the per-call timeout, with failures classified for the retry policy.
type Client struct {
	name    string
	backend Completer
	opts    Options
	logger  *zap.Logger
}

// NewClient wraps backend
func NewClient(name string, backend Completer, opts Options, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RepairTimeout <= 0 {
		opts.RepairTimeout = 15 * time.Second
	}
	return &Client{name: name, backend: backend, opts: opts, logger: logger}
}

// New builds the client for the provider selected in cfg
func New(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*Client, error) {
	var (
		backend Completer
		err     error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		backend = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.Temperature)
	case config.ProviderGroq:
		backend, err = NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL, cfg.Temperature)
	case config.ProviderGemini:
		backend, err = NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Temperature)
	default:
		err = fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewClient(cfg.Provider, backend, Options{
		Timeout:       cfg.Timeout,
		RepairTimeout: cfg.RepairTimeout,
	}, logger), nil
}

// Name returns the provider name
func (c *Client) Name() string {
	return c.name
}

// Generate performs one call and decodes the reply. Undecodable replies are
// not errors: they come back with DecodeErr set so validation can report them.
func (c *Client) Generate(ctx context.Context, req Request) (entities.RawGeneratedOutput, error) {
	if c == nil || c.backend == nil {
		return entities.RawGeneratedOutput{}, entities.ErrGeneratorNotConfigured
	}

	timeout := c.opts.Timeout
	if req.Mode == ModeRepair {
		timeout = c.opts.RepairTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := c.backend.Complete(callCtx, req)
	if err != nil {
		err = classifyError(ctx, err)
		if !entities.IsTransient(err) {
			err = fmt.Errorf("%s: %w: %w", c.name, entities.ErrGeneratorFailed, err)
		}
		if c.logger != nil {
			c.logger.Warn("generator call failed",
				zap.String("provider", c.name),
				zap.String("mode", string(req.Mode)),
				zap.Duration("duration", time.Since(start)),
				zap.String("error_kind", string(entities.TransientKindOf(err))),
				zap.Error(err),
			)
		}
		return entities.RawGeneratedOutput{}, err
	}

	out := DecodeOutput(text)
	if c.logger != nil {
		c.logger.Info("generator responded",
			zap.String("provider", c.name),
			zap.String("mode", string(req.Mode)),
			zap.Duration("duration", time.Since(start)),
			zap.Int("output_len", len(text)),
			zap.Bool("decoded", out.Decoded()),
		)
	}
	return out, nil
}
