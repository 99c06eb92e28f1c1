package entities

import (
	"fmt"
	"time"
)

// SourceSystem is the provenance stamped on every produced record
const SourceSystem = "source-system"

// SentimentLabel is the overall meeting sentiment
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Sentiment score thresholds
const (
	PositiveMinScore = 0.6
	NeutralMinScore  = 0.4
)

// Valid reports whether l is a known label
func (l SentimentLabel) Valid() bool {
	switch l {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Accepts reports whether score is consistent with the label
func (l SentimentLabel) Accepts(score float64) bool {
	switch l {
	case SentimentPositive:
		return score >= PositiveMinScore
	case SentimentNeutral:
		return score >= NeutralMinScore && score < PositiveMinScore
	case SentimentNegative:
		return score < NeutralMinScore
	}
	return false
}

// MeetingRecord holds the fields shared by extraction and analysis results
type MeetingRecord struct {
	MeetingID      string    `json:"meeting_id" jsonschema:"required"`
	CustomerID     string    `json:"customer_id" jsonschema:"required"`
	CustomerName   string    `json:"customer_name" jsonschema:"required"`
	BankerID       string    `json:"banker_id" jsonschema:"required"`
	BankerName     string    `json:"banker_name" jsonschema:"required"`
	MeetType       string    `json:"meet_type" jsonschema:"required"`
	MeetDate       time.Time `json:"meet_date" jsonschema:"required"`
	Summary        string    `json:"summary" jsonschema:"required,description=Executive summary with 100 to 200 words"`
	KeyPoints      []string  `json:"key_points" jsonschema:"required"`
	ActionItems    []string  `json:"action_items" jsonschema:"required"`
	Source         string    `json:"source" jsonschema:"required,enum=source-system"`
	IdempotencyKey string    `json:"idempotency_key,omitempty" jsonschema:"-"`
	TranscriptRef  *string   `json:"transcript_ref,omitempty" jsonschema:"-"`
	DurationSec    *int      `json:"duration_sec,omitempty" jsonschema:"-"`
}

// ExtractedMeeting is the factual extraction variant
type ExtractedMeeting struct {
	MeetingRecord
	Topics []string `json:"topics" jsonschema:"required"`
}

// AnalyzedMeeting is the sentiment analysis variant
type AnalyzedMeeting struct {
	MeetingRecord
	SentimentLabel SentimentLabel `json:"sentiment_label" jsonschema:"required,enum=positive,enum=neutral,enum=negative"`
	SentimentScore float64        `json:"sentiment_score" jsonschema:"required,minimum=0,maximum=1"`
	Risks          []string       `json:"risks" jsonschema:"required"`
}

// Result is a validated record of exactly one variant
type Result struct {
	Variant    Variant           `json:"variant"`
	Extraction *ExtractedMeeting `json:"extraction,omitempty"`
	Analysis   *AnalyzedMeeting  `json:"analysis,omitempty"`
}

// NewExtractionResult wraps an extraction record
func NewExtractionResult(m *ExtractedMeeting) Result {
	return Result{Variant: VariantExtraction, Extraction: m}
}

// NewAnalysisResult wraps an analysis record
func NewAnalysisResult(m *AnalyzedMeeting) Result {
	return Result{Variant: VariantAnalysis, Analysis: m}
}

// Record returns the shared base of whichever variant is set
func (r Result) Record() *MeetingRecord {
	switch r.Variant {
	case VariantExtraction:
		if r.Extraction != nil {
			return &r.Extraction.MeetingRecord
		}
	case VariantAnalysis:
		if r.Analysis != nil {
			return &r.Analysis.MeetingRecord
		}
	}
	return nil
}

// Clone returns a deep copy so holders of r cannot change the copy's record
func (r Result) Clone() Result {
	out := Result{Variant: r.Variant}
	if r.Extraction != nil {
		m := *r.Extraction
		m.MeetingRecord = r.Extraction.MeetingRecord.clone()
		m.Topics = cloneStrings(r.Extraction.Topics)
		out.Extraction = &m
	}
	if r.Analysis != nil {
		m := *r.Analysis
		m.MeetingRecord = r.Analysis.MeetingRecord.clone()
		m.Risks = cloneStrings(r.Analysis.Risks)
		out.Analysis = &m
	}
	return out
}

func (m MeetingRecord) clone() MeetingRecord {
	m.KeyPoints = cloneStrings(m.KeyPoints)
	m.ActionItems = cloneStrings(m.ActionItems)
	if m.TranscriptRef != nil {
		ref := *m.TranscriptRef
		m.TranscriptRef = &ref
	}
	if m.DurationSec != nil {
		d := *m.DurationSec
		m.DurationSec = &d
	}
	return m
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

// Payload returns the variant record for serialization
func (r Result) Payload() interface{} {
	if r.Variant == VariantAnalysis {
		return r.Analysis
	}
	return r.Extraction
}

// Check verifies that the tag matches the populated variant
func (r Result) Check() error {
	switch r.Variant {
	case VariantExtraction:
		if r.Extraction == nil || r.Analysis != nil {
			return fmt.Errorf("result tagged %q must carry only an extraction record", r.Variant)
		}
	case VariantAnalysis:
		if r.Analysis == nil || r.Extraction != nil {
			return fmt.Errorf("result tagged %q must carry only an analysis record", r.Variant)
		}
	default:
		return fmt.Errorf("unknown result variant %q", r.Variant)
	}
	return nil
}
