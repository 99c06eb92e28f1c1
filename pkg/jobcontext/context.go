package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

type KeyContext string

var (
	keyRequestID KeyContext = "request_id"
	keyVariant   KeyContext = "variant"
	keyStartTime KeyContext = "start_time"
)

// DefaultTimeout bounds a whole pipeline run when no timeout is configured
const DefaultTimeout = 2 * time.Minute

// RunMetadata holds metadata for one pipeline run
type RunMetadata struct {
	RequestID string
	Variant   entities.Variant
	StartTime time.Time
	Deadline  time.Time
}

// Begin derives a run context carrying request metadata and an overall deadline.
// An empty requestID is replaced with a generated one.
func Begin(parentCtx context.Context, requestID string, variant entities.Variant, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyVariant, variant)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// WithRequestID stores a request ID without starting a run
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// GetVariant extracts the run variant from context
func GetVariant(ctx context.Context) (entities.Variant, bool) {
	v, ok := ctx.Value(keyVariant).(entities.Variant)
	return v, ok
}

// GetStartTime extracts the run start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyStartTime).(time.Time)
	return startTime, ok
}

// Elapsed returns the time since Begin, or 0 outside a run
func Elapsed(ctx context.Context) time.Duration {
	start, ok := GetStartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	variant, _ := GetVariant(ctx)
	startTime, _ := GetStartTime(ctx)
	deadline, _ := ctx.Deadline()

	return &RunMetadata{
		RequestID: GetRequestID(ctx),
		Variant:   variant,
		StartTime: startTime,
		Deadline:  deadline,
	}
}

// Fields returns the zap fields every pipeline log line carries
func Fields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if v, ok := GetVariant(ctx); ok {
		fields = append(fields, zap.String("variant", string(v)))
	}
	return fields
}

// Logger returns base annotated with the run fields
func Logger(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.With(Fields(ctx)...)
}
