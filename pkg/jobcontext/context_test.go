package jobcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestBegin(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "req-1", entities.VariantAnalysis, time.Minute)
	defer cancel()

	assert.Equal(t, "req-1", GetRequestID(ctx))
	v, ok := GetVariant(ctx)
	require.True(t, ok)
	assert.Equal(t, entities.VariantAnalysis, v)

	meta := GetRunMetadata(ctx)
	assert.WithinDuration(t, time.Now().Add(time.Minute), meta.Deadline, 5*time.Second)
	assert.False(t, meta.StartTime.IsZero())
	assert.GreaterOrEqual(t, Elapsed(ctx), time.Duration(0))
}

func TestBegin_GeneratesRequestIDAndDefaultTimeout(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "", entities.VariantExtraction, 0)
	defer cancel()

	assert.Len(t, GetRequestID(ctx), 36)
	dl, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultTimeout), dl, 5*time.Second)
}

func TestBegin_CancelPropagates(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "r", entities.VariantExtraction, time.Minute)
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithRequestID(context.Background(), "abc")

	Logger(ctx, zap.New(core)).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc", logs.All()[0].ContextMap()["request_id"])
	assert.Zero(t, Elapsed(ctx))
	assert.NotNil(t, Logger(ctx, nil))
}
