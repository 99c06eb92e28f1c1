package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// RunLog persists one audit row per pipeline run
type RunLog interface {
	Record(ctx context.Context, run *entities.PipelineRun) error
	ListRecent(ctx context.Context, limit int) ([]entities.PipelineRun, error)
	GetByRequestID(ctx context.Context, requestID string) ([]entities.PipelineRun, error)
}
