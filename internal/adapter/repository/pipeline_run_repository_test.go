package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/database"
)

// newTestDB connects to POSTGRES_TEST_DSN and migrates it, or skips
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}
	_, err = database.Migrate(db, migrate.Up)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })
	return db
}

func TestPipelineRunRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewPipelineRunRepository(db)
	ctx := context.Background()
	reqID := "req-" + uuid.NewString()

	kind := "repair_exhausted"
	require.NoError(t, repo.Record(ctx, &entities.PipelineRun{
		RequestID:       reqID,
		Variant:         entities.VariantExtraction,
		Outcome:         "generated",
		DurationMs:      120,
		TranscriptChars: 42,
	}))
	require.NoError(t, repo.Record(ctx, &entities.PipelineRun{
		RequestID:       reqID,
		Variant:         entities.VariantAnalysis,
		Outcome:         "failed",
		ErrorKind:       &kind,
		Violations:      []byte(`["summary: too short"]`),
		DurationMs:      900,
		TranscriptChars: 42,
	}))

	runs, err := repo.GetByRequestID(ctx, reqID)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "generated", runs[0].Outcome)
	assert.JSONEq(t, `[]`, string(runs[0].Violations))
	assert.Equal(t, "failed", runs[1].Outcome)
	require.NotNil(t, runs[1].ErrorKind)
	assert.Equal(t, kind, *runs[1].ErrorKind)
	assert.JSONEq(t, `["summary: too short"]`, string(runs[1].Violations))

	recent, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestPipelineRunRepository_RecordNil(t *testing.T) {
	repo := NewPipelineRunRepository(nil)
	assert.Error(t, repo.Record(context.Background(), nil))
}
