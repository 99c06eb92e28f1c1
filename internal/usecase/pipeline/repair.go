package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/events"
	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

// Generator performs a single generation call
type Generator interface {
	Generate(ctx context.Context, req ai.Request) (entities.RawGeneratedOutput, error)
}

// Repairer makes one attempt to correct an invalid output
type Repairer struct {
	generator Generator
	validator *Validator
	prompts   *Prompts
	emitter   events.Emitter
	logger    *zap.Logger
}

// NewRepairer creates a Repairer
func NewRepairer(generator Generator, validator *Validator, prompts *Prompts, emitter events.Emitter, logger *zap.Logger) *Repairer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repairer{
		generator: generator,
		validator: validator,
		prompts:   prompts,
		emitter:   emitter,
		logger:    logger,
	}
}

// Repair asks the generator to correct the output described by verr and
// validates the reply once. Generator failures are returned as is and are not
// retried.
func (r *Repairer) Repair(ctx context.Context, in entities.NormalizedInput, variant entities.Variant, verr *entities.ValidationError) (entities.Result, error) {
	log := jobcontext.Logger(ctx, r.logger)
	log.Warn("output failed validation, attempting repair",
		zap.Int("violations", len(verr.Violations)),
		zap.String("error", truncate(verr.Error(), 200)),
	)

	req, err := r.prompts.Repair(variant, in, verr)
	if err != nil {
		return entities.Result{}, err
	}

	raw, err := r.generator.Generate(ctx, req)
	if err != nil {
		r.emit(ctx, variant, false)
		log.Error("repair call failed", zap.Error(err))
		return entities.Result{}, err
	}

	result, err := r.validator.Validate(variant, raw)
	if err != nil {
		r.emit(ctx, variant, false)
		var still *entities.ValidationError
		if errors.As(err, &still) {
			log.Error("repaired output still invalid", zap.Strings("violations", still.Violations))
			return entities.Result{}, &entities.RepairExhaustedError{Cause: still}
		}
		return entities.Result{}, err
	}

	r.emit(ctx, variant, true)
	log.Info("output repaired")
	return result, nil
}

func (r *Repairer) emit(ctx context.Context, variant entities.Variant, success bool) {
	events.Emit(r.emitter, entities.Event{
		Type:      entities.EventRepairAttempted,
		Success:   success,
		Variant:   variant,
		RequestID: jobcontext.GetRequestID(ctx),
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
