package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

const maxListLimit = 500

// PipelineRunRepository handles pipeline run audit rows
type PipelineRunRepository struct {
	db *gorm.DB
}

// NewPipelineRunRepository creates a new pipeline run repository
func NewPipelineRunRepository(db *gorm.DB) *PipelineRunRepository {
	return &PipelineRunRepository{db: db}
}

// Record inserts run
func (r *PipelineRunRepository) Record(ctx context.Context, run *entities.PipelineRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	if len(run.Violations) == 0 {
		run.Violations = []byte("[]")
	}
	return r.db.WithContext(ctx).Create(run).Error
}

// ListRecent returns the newest runs first
func (r *PipelineRunRepository) ListRecent(ctx context.Context, limit int) ([]entities.PipelineRun, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	var runs []entities.PipelineRun
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// GetByRequestID returns the runs logged under one request ID
func (r *PipelineRunRepository) GetByRequestID(ctx context.Context, requestID string) ([]entities.PipelineRun, error) {
	var runs []entities.PipelineRun
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
