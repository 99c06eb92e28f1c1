package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
)

func validationErr(t *testing.T, err error) *entities.ValidationError {
	t.Helper()
	var verr *entities.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr
}

func TestValidate_Extraction(t *testing.T) {
	result, err := NewValidator().Validate(entities.VariantExtraction, entities.NewRawOutput(extractionFields()))
	require.NoError(t, err)
	require.NoError(t, result.Check())

	m := result.Extraction
	assert.Equal(t, "M1", m.MeetingID)
	assert.Equal(t, entities.SourceSystem, m.Source)
	assert.Equal(t, []string{"credit"}, m.Topics)
	assert.True(t, m.MeetDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, m.TranscriptRef)
	assert.Nil(t, m.DurationSec)
}

func TestValidate_SummaryWordBoundaries(t *testing.T) {
	tests := []struct {
		words int
		valid bool
	}{
		{99, false},
		{100, true},
		{200, true},
		{201, false},
	}
	for _, tt := range tests {
		f := extractionFields()
		f["summary"] = words(tt.words)
		_, err := NewValidator().Validate(entities.VariantExtraction, entities.NewRawOutput(f))
		if tt.valid {
			assert.NoError(t, err, "%d words", tt.words)
			continue
		}
		verr := validationErr(t, err)
		assert.Len(t, verr.Violations, 1)
		assert.Contains(t, verr.Violations[0], "summary")
	}
}

func TestValidate_SentimentBoundaries(t *testing.T) {
	tests := []struct {
		label string
		score float64
		valid bool
	}{
		{"positive", 0.6, true},
		{"positive", 0.599999, false},
		{"positive", 1, true},
		{"neutral", 0.4, true},
		{"neutral", 0.39999, false},
		{"neutral", 0.6, false},
		{"negative", 0.399999, true},
		{"negative", 0.4, false},
		{"negative", 0, true},
	}
	for _, tt := range tests {
		_, err := NewValidator().Validate(entities.VariantAnalysis, entities.NewRawOutput(analysisFields(tt.label, tt.score)))
		if tt.valid {
			assert.NoError(t, err, "%s %v", tt.label, tt.score)
		} else {
			assert.Error(t, err, "%s %v", tt.label, tt.score)
		}
	}
}

func TestValidate_AnalysisRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f map[string]interface{})
		expect string
	}{
		{"unknown label", func(f map[string]interface{}) { f["sentiment_label"] = "ecstatic" }, "sentiment_label"},
		{"score above range", func(f map[string]interface{}) { f["sentiment_score"] = 1.5 }, "between 0 and 1"},
		{"score below range", func(f map[string]interface{}) { f["sentiment_score"] = -0.1 }, "between 0 and 1"},
		{"score as string", func(f map[string]interface{}) { f["sentiment_score"] = "0.9" }, "expected number"},
		{"risks absent", func(f map[string]interface{}) { delete(f, "risks") }, "risks: field required"},
		{"risks null", func(f map[string]interface{}) { f["risks"] = nil }, "risks: field required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := analysisFields("positive", 0.8)
			tt.mutate(f)
			_, err := NewValidator().Validate(entities.VariantAnalysis, entities.NewRawOutput(f))
			verr := validationErr(t, err)
			assert.Equal(t, entities.VariantAnalysis, verr.Variant)
			assert.Contains(t, verr.Error(), tt.expect)
		})
	}
}

func TestValidate_EmptyRisksSerializeAsArray(t *testing.T) {
	result, err := NewValidator().Validate(entities.VariantAnalysis, entities.NewRawOutput(analysisFields("neutral", 0.5)))
	require.NoError(t, err)
	require.NotNil(t, result.Analysis.Risks)
	assert.Empty(t, result.Analysis.Risks)
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	f := extractionFields()
	delete(f, "meeting_id")
	f["banker_name"] = 7
	f["key_points"] = []interface{}{"ok", 3}
	f["meet_date"] = "last tuesday"
	f["summary"] = words(10)
	delete(f, "topics")

	raw := entities.NewRawOutput(f)
	_, err := NewValidator().Validate(entities.VariantExtraction, raw)
	verr := validationErr(t, err)

	assert.Len(t, verr.Violations, 6)
	assert.Contains(t, verr.Error(), "6 validation error(s) for extract result")
	assert.Contains(t, verr.Error(), "meeting_id: field required")
	assert.Contains(t, verr.Error(), "banker_name: expected string, got number")
	assert.Contains(t, verr.Error(), "key_points[1]: expected string")
	assert.Contains(t, verr.Error(), "meet_date")
	assert.Equal(t, raw, verr.Raw)
}

func TestValidate_OptionalFields(t *testing.T) {
	f := extractionFields()
	f["transcript_ref"] = "s3://bucket/t.txt"
	f["duration_sec"] = float64(1800)
	result, err := NewValidator().Validate(entities.VariantExtraction, entities.NewRawOutput(f))
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/t.txt", *result.Extraction.TranscriptRef)
	assert.Equal(t, 1800, *result.Extraction.DurationSec)

	f["duration_sec"] = 12.5
	_, err = NewValidator().Validate(entities.VariantExtraction, entities.NewRawOutput(f))
	assert.Contains(t, validationErr(t, err).Error(), "duration_sec")

	f["duration_sec"] = nil
	f["transcript_ref"] = nil
	_, err = NewValidator().Validate(entities.VariantExtraction, entities.NewRawOutput(f))
	assert.NoError(t, err)
}

func TestValidate_DateLayouts(t *testing.T) {
	for _, s := range []string{
		"2025-09-10T14:30:00Z",
		"2025-09-10T14:30:00.123456789-03:00",
		"2025-09-10T14:30:00",
		"2025-09-10 14:30:00",
		"2025-09-10",
	} {
		f := extractionFields()
		f["meet_date"] = s
		_, err := NewValidator().Validate(entities.VariantExtraction, entities.NewRawOutput(f))
		assert.NoError(t, err, s)
	}
}

func TestValidate_UndecodedOutput(t *testing.T) {
	raw := ai.DecodeOutput("I could not produce JSON")
	_, err := NewValidator().Validate(entities.VariantExtraction, raw)
	verr := validationErr(t, err)
	assert.Len(t, verr.Violations, 1)
	assert.Contains(t, verr.Violations[0], "not a JSON object")
	assert.Equal(t, "I could not produce JSON", verr.Raw.Serialize())
}

func TestValidate_UnknownVariant(t *testing.T) {
	_, err := NewValidator().Validate(entities.Variant("other"), entities.NewRawOutput(extractionFields()))
	assert.ErrorIs(t, err, entities.ErrUnknownVariant)
}
