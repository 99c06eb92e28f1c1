package events

import (
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// LogObserver writes every event as a debug line
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates a LogObserver
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe logs e
func (o *LogObserver) Observe(e entities.Event) {
	if o.logger == nil {
		return
	}
	fields := []zap.Field{zap.String("event", string(e.Type))}
	if e.RequestID != "" {
		fields = append(fields, zap.String("request_id", e.RequestID))
	}

	switch e.Type {
	case entities.EventCacheHit, entities.EventCacheMiss, entities.EventCacheSave, entities.EventCacheExpire:
		fields = append(fields, zap.String("key", shortKey(e.Key)))
		if e.Age > 0 {
			fields = append(fields, zap.Duration("age", e.Age))
		}
	case entities.EventRetryAttempt:
		fields = append(fields,
			zap.Int("attempt", e.AttemptNumber),
			zap.Float64("wait_seconds", e.WaitSeconds),
			zap.String("error_kind", string(e.ErrorKind)),
		)
	case entities.EventRepairAttempted:
		fields = append(fields,
			zap.Bool("success", e.Success),
			zap.String("variant", string(e.Variant)),
		)
	}
	o.logger.Debug("pipeline event", fields...)
}

// shortKey keeps log lines readable; keys are 64 hex chars plus a prefix
func shortKey(k string) string {
	if len(k) <= 24 {
		return k
	}
	return k[:24] + "..."
}
