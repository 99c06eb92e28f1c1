package pipeline

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Summary length bounds, in whitespace-separated words
const (
	MinSummaryWords = 100
	MaxSummaryWords = 200
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Validator turns raw generator output into a typed Result
type Validator struct{}

// NewValidator creates a Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks raw against the variant contract. Every violation is
// reported in a single *entities.ValidationError.
func (v *Validator) Validate(variant entities.Variant, raw entities.RawGeneratedOutput) (entities.Result, error) {
	if !raw.Decoded() {
		reason := "output is not a JSON object"
		if raw.DecodeErr != nil {
			reason += ": " + raw.DecodeErr.Error()
		}
		return entities.Result{}, &entities.ValidationError{Variant: variant, Violations: []string{reason}, Raw: raw}
	}

	r := &fieldReader{raw: raw}
	rec := r.record()

	var result entities.Result
	switch variant {
	case entities.VariantExtraction:
		m := &entities.ExtractedMeeting{MeetingRecord: rec, Topics: r.strings("topics")}
		result = entities.NewExtractionResult(m)
	case entities.VariantAnalysis:
		m := &entities.AnalyzedMeeting{MeetingRecord: rec}
		r.sentiment(m)
		m.Risks = r.strings("risks")
		result = entities.NewAnalysisResult(m)
	default:
		return entities.Result{}, entities.ErrUnknownVariant
	}

	if r.err != nil {
		errs := multierr.Errors(r.err)
		violations := make([]string, 0, len(errs))
		for _, err := range errs {
			violations = append(violations, err.Error())
		}
		return entities.Result{}, &entities.ValidationError{Variant: variant, Violations: violations, Raw: raw}
	}
	return result, nil
}

// fieldReader reads typed fields from raw output, accumulating violations
type fieldReader struct {
	raw entities.RawGeneratedOutput
	err error
}

func (r *fieldReader) fail(err error) {
	r.err = multierr.Append(r.err, err)
}

func (r *fieldReader) str(key string) string {
	s, err := r.raw.String(key)
	r.fail(err)
	return s
}

func (r *fieldReader) strings(key string) []string {
	s, err := r.raw.StringSlice(key)
	r.fail(err)
	if s == nil && err == nil {
		s = []string{}
	}
	return s
}

func (r *fieldReader) record() entities.MeetingRecord {
	rec := entities.MeetingRecord{
		MeetingID:    r.str("meeting_id"),
		CustomerID:   r.str("customer_id"),
		CustomerName: r.str("customer_name"),
		BankerID:     r.str("banker_id"),
		BankerName:   r.str("banker_name"),
		MeetType:     r.str("meet_type"),
		MeetDate:     r.date("meet_date"),
		Summary:      r.summary("summary"),
		KeyPoints:    r.strings("key_points"),
		ActionItems:  r.strings("action_items"),
		Source:       entities.SourceSystem,
	}

	var err error
	rec.TranscriptRef, err = r.raw.OptionalString("transcript_ref")
	r.fail(err)
	rec.DurationSec, err = r.raw.OptionalInt("duration_sec")
	r.fail(err)
	if rec.DurationSec != nil && *rec.DurationSec < 0 {
		r.fail(fmt.Errorf("duration_sec: must be >= 0, got %d", *rec.DurationSec))
	}
	return rec
}

func (r *fieldReader) date(key string) time.Time {
	s, err := r.raw.String(key)
	if err != nil {
		r.fail(err)
		return time.Time{}
	}
	t, err := parseDate(s)
	if err != nil {
		r.fail(fmt.Errorf("%s: %q is not an ISO 8601 datetime", key, s))
		return time.Time{}
	}
	return t
}

func (r *fieldReader) summary(key string) string {
	s, err := r.raw.String(key)
	if err != nil {
		r.fail(err)
		return ""
	}
	if n := len(strings.Fields(s)); n < MinSummaryWords || n > MaxSummaryWords {
		r.fail(fmt.Errorf("%s: must have between %d and %d words, got %d", key, MinSummaryWords, MaxSummaryWords, n))
	}
	return s
}

func (r *fieldReader) sentiment(m *entities.AnalyzedMeeting) {
	label, err := r.raw.String("sentiment_label")
	r.fail(err)
	labelOK := err == nil
	score, err := r.raw.Float("sentiment_score")
	r.fail(err)
	scoreOK := err == nil

	m.SentimentLabel = entities.SentimentLabel(label)
	m.SentimentScore = score

	if labelOK && !m.SentimentLabel.Valid() {
		r.fail(fmt.Errorf("sentiment_label: must be one of positive, neutral, negative, got %q", label))
		labelOK = false
	}
	if scoreOK && (score < 0 || score > 1) {
		r.fail(fmt.Errorf("sentiment_score: must be between 0 and 1, got %v", score))
		scoreOK = false
	}
	if labelOK && scoreOK && !m.SentimentLabel.Accepts(score) {
		r.fail(fmt.Errorf("sentiment_score: %v is inconsistent with sentiment_label %q (%s)",
			score, label, labelRange(m.SentimentLabel)))
	}
}

func labelRange(l entities.SentimentLabel) string {
	switch l {
	case entities.SentimentPositive:
		return fmt.Sprintf("expected >= %.1f", entities.PositiveMinScore)
	case entities.SentimentNeutral:
		return fmt.Sprintf("expected >= %.1f and < %.1f", entities.NeutralMinScore, entities.PositiveMinScore)
	}
	return fmt.Sprintf("expected < %.1f", entities.NeutralMinScore)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
