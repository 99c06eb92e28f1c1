package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

// Pipeline outcomes reported to the Recorder
const (
	OutcomeCacheHit  = "cache_hit"
	OutcomeGenerated = "generated"
	OutcomeRepaired  = "repaired"
	OutcomeFailed    = "failed"
)

const (
	logPreviewChars = 100
	runLogTimeout   = 2 * time.Second
)

// Service turns transcripts into validated meeting records
type Service interface {
	Extract(ctx context.Context, in entities.NormalizedInput) (*entities.ExtractedMeeting, error)
	Analyze(ctx context.Context, in entities.NormalizedInput) (*entities.AnalyzedMeeting, error)
	ClearCache(ctx context.Context) (int, error)
}

// Recorder receives per-run measurements
type Recorder interface {
	ObserveRun(variant entities.Variant, outcome string, d time.Duration)
	ObserveTranscriptSize(bytes int)
}

// Options tunes a pipeline service
type Options struct {
	// Timeout bounds a whole run including retries and repair
	Timeout  time.Duration
	Recorder Recorder
	// Archive stores transcripts of identified meetings and fills
	// transcript_ref when the model left it empty
	Archive repositories.TranscriptArchive
	// RunLog receives one audit row per run
	RunLog repositories.RunLog
}

type pipelineService struct {
	generator Generator
	cache     repositories.ResultCache
	prompts   *Prompts
	retrier   *Retrier
	validator *Validator
	repairer  *Repairer
	opts      Options
	logger    *zap.Logger
}

// NewPipelineService constructs the pipeline controller. cache may be nil to
// disable caching.
func NewPipelineService(
	generator Generator,
	cache repositories.ResultCache,
	prompts *Prompts,
	retrier *Retrier,
	repairer *Repairer,
	opts Options,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	if retrier == nil {
		retrier = NewRetrier(DefaultRetryPolicy(), nil, logger)
	}
	validator := NewValidator()
	if repairer == nil {
		repairer = NewRepairer(generator, validator, prompts, nil, logger)
	}
	return &pipelineService{
		generator: generator,
		cache:     cache,
		prompts:   prompts,
		retrier:   retrier,
		validator: validator,
		repairer:  repairer,
		opts:      opts,
		logger:    logger,
	}
}

// Extract produces the factual extraction record
func (s *pipelineService) Extract(ctx context.Context, in entities.NormalizedInput) (*entities.ExtractedMeeting, error) {
	result, err := s.run(ctx, entities.VariantExtraction, in)
	if err != nil {
		return nil, err
	}
	return result.Extraction, nil
}

// Analyze produces the sentiment analysis record
func (s *pipelineService) Analyze(ctx context.Context, in entities.NormalizedInput) (*entities.AnalyzedMeeting, error) {
	result, err := s.run(ctx, entities.VariantAnalysis, in)
	if err != nil {
		return nil, err
	}
	return result.Analysis, nil
}

// ClearCache empties the result cache
func (s *pipelineService) ClearCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	n, err := s.cache.Clear(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("result cache cleared", zap.Int("entries", n))
	return n, nil
}

func (s *pipelineService) run(ctx context.Context, variant entities.Variant, in entities.NormalizedInput) (entities.Result, error) {
	if strings.TrimSpace(in.Transcript) == "" {
		return entities.Result{}, entities.ErrEmptyTranscript
	}

	ctx, cancel := jobcontext.Begin(ctx, jobcontext.GetRequestID(ctx), variant, s.opts.Timeout)
	defer cancel()
	log := jobcontext.Logger(ctx, s.logger)
	start := time.Now()

	if s.opts.Recorder != nil {
		s.opts.Recorder.ObserveTranscriptSize(len(in.Transcript))
	}
	log.Info("pipeline started",
		zap.Int("transcript_chars", len(in.Transcript)),
		zap.String("transcript_preview", TranscriptPreview(in.Transcript, logPreviewChars)),
		zap.Bool("has_metadata", in.HasMetadata()),
	)

	key, hasKey := DeriveIdentityKey(in)
	if !hasKey {
		log.Warn("identity fields missing, result will not be cached",
			zap.Bool("meeting_id", in.MeetingID != nil),
			zap.Bool("meeting_date", in.MeetingDate != nil),
			zap.Bool("customer_id", in.CustomerID != nil),
		)
	} else if cached, ok := s.lookup(ctx, log, variant, key); ok {
		s.observe(variant, OutcomeCacheHit, start)
		s.audit(ctx, log, variant, in, key, OutcomeCacheHit, nil, start)
		log.Info("pipeline finished from cache", zap.Duration("duration", time.Since(start)))
		return cached, nil
	}

	result, outcome, err := s.produce(ctx, variant, in)
	if err != nil {
		s.observe(variant, OutcomeFailed, start)
		s.audit(ctx, log, variant, in, key, OutcomeFailed, err, start)
		log.Error("pipeline failed",
			zap.Duration("duration", time.Since(start)),
			zap.String("error_kind", errorKind(err)),
			zap.Error(err),
		)
		return entities.Result{}, err
	}

	rec := result.Record()
	if hasKey {
		rec.IdempotencyKey = key
		s.archive(ctx, log, key, in.Transcript, rec)
		s.store(ctx, log, variant, key, result)
	} else {
		rec.IdempotencyKey = MissingIdentityKey
	}

	s.observe(variant, outcome, start)
	s.audit(ctx, log, variant, in, key, outcome, nil, start)
	log.Info("pipeline finished",
		zap.String("outcome", outcome),
		zap.Duration("duration", time.Since(start)),
		zap.String("meeting_id", rec.MeetingID),
	)
	return result, nil
}

// produce generates under the retry policy, validates and repairs once if needed
func (s *pipelineService) produce(ctx context.Context, variant entities.Variant, in entities.NormalizedInput) (entities.Result, string, error) {
	if s.generator == nil {
		return entities.Result{}, "", entities.ErrGeneratorNotConfigured
	}

	req, err := s.prompts.Primary(variant, in)
	if err != nil {
		return entities.Result{}, "", err
	}

	var raw entities.RawGeneratedOutput
	err = s.retrier.Do(ctx, func(ctx context.Context) error {
		out, err := s.generator.Generate(ctx, req)
		if err != nil {
			return err
		}
		raw = out
		return nil
	})
	if err != nil {
		return entities.Result{}, "", err
	}

	result, err := s.validator.Validate(variant, raw)
	if err == nil {
		return result, OutcomeGenerated, nil
	}
	var verr *entities.ValidationError
	if !errors.As(err, &verr) {
		return entities.Result{}, "", err
	}

	result, err = s.repairer.Repair(ctx, in, variant, verr)
	if err != nil {
		return entities.Result{}, "", err
	}
	return result, OutcomeRepaired, nil
}

func (s *pipelineService) lookup(ctx context.Context, log *zap.Logger, variant entities.Variant, key string) (entities.Result, bool) {
	if s.cache == nil {
		return entities.Result{}, false
	}
	cached, ok, err := s.cache.Get(ctx, storageKey(variant, key))
	if err != nil {
		log.Warn("cache read failed, treating as miss", zap.Error(err))
		return entities.Result{}, false
	}
	if !ok {
		return entities.Result{}, false
	}
	if err := cached.Check(); err != nil || cached.Variant != variant {
		log.Warn("discarding malformed cache entry", zap.Error(err))
		return entities.Result{}, false
	}
	return cached, true
}

func (s *pipelineService) store(ctx context.Context, log *zap.Logger, variant entities.Variant, key string, result entities.Result) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, storageKey(variant, key), result); err != nil {
		log.Warn("cache write failed, result not cached", zap.Error(err))
	}
}

func (s *pipelineService) archive(ctx context.Context, log *zap.Logger, key, transcript string, rec *entities.MeetingRecord) {
	if s.opts.Archive == nil || rec.TranscriptRef != nil {
		return
	}
	ref, err := s.opts.Archive.Put(ctx, key, transcript)
	if err != nil {
		log.Warn("transcript archive failed", zap.Error(err))
		return
	}
	rec.TranscriptRef = &ref
}

func (s *pipelineService) observe(variant entities.Variant, outcome string, start time.Time) {
	if s.opts.Recorder != nil {
		s.opts.Recorder.ObserveRun(variant, outcome, time.Since(start))
	}
}

// audit writes the run row. The write outlives a cancelled or expired run
// context so failures are still logged.
func (s *pipelineService) audit(ctx context.Context, log *zap.Logger, variant entities.Variant, in entities.NormalizedInput, key, outcome string, runErr error, start time.Time) {
	if s.opts.RunLog == nil {
		return
	}
	run := &entities.PipelineRun{
		RequestID:       jobcontext.GetRequestID(ctx),
		Variant:         variant,
		Outcome:         outcome,
		DurationMs:      time.Since(start).Milliseconds(),
		TranscriptChars: len(in.Transcript),
	}
	if key != "" {
		run.IdentityKey = &key
	}
	if runErr != nil {
		kind, msg := errorKind(runErr), runErr.Error()
		run.ErrorKind, run.ErrorMessage = &kind, &msg
		if violations := violationsOf(runErr); len(violations) > 0 {
			if b, err := json.Marshal(violations); err == nil {
				run.Violations = b
			}
		}
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runLogTimeout)
	defer cancel()
	if err := s.opts.RunLog.Record(writeCtx, run); err != nil {
		log.Warn("run log write failed", zap.Error(err))
	}
}

func violationsOf(err error) []string {
	var verr *entities.ValidationError
	if errors.As(err, &verr) {
		return verr.Violations
	}
	return nil
}

func errorKind(err error) string {
	var (
		repairErr *entities.RepairExhaustedError
		verr      *entities.ValidationError
	)
	switch {
	case entities.IsTransient(err):
		return string(entities.TransientKindOf(err))
	case errors.As(err, &repairErr):
		return "repair_exhausted"
	case errors.As(err, &verr):
		return "validation"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "generator"
}
