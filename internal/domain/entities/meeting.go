package entities

import "time"

// Variant selects which structured record the pipeline produces
type Variant string

const (
	VariantExtraction Variant = "extract"
	VariantAnalysis   Variant = "analyze"
)

// Valid reports whether v is a known variant
func (v Variant) Valid() bool {
	return v == VariantExtraction || v == VariantAnalysis
}

// Metadata holds caller-supplied meeting metadata. Provided values are treated
// as ground truth and take priority over anything inferred from the transcript.
type Metadata struct {
	MeetingID    string     `json:"meeting_id,omitempty"`
	CustomerID   string     `json:"customer_id,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
	BankerID     string     `json:"banker_id,omitempty"`
	BankerName   string     `json:"banker_name,omitempty"`
	MeetType     string     `json:"meet_type,omitempty"`
	MeetDate     *time.Time `json:"meet_date,omitempty"`
}

// RawMeeting is the complete meeting record emitted by upstream capture systems
type RawMeeting struct {
	MeetID            string    `json:"meet_id" validate:"required"`
	CustomerID        string    `json:"customer_id" validate:"required"`
	CustomerName      string    `json:"customer_name" validate:"required"`
	CustomerEmail     string    `json:"customer_email,omitempty" validate:"omitempty,email"`
	BankerID          string    `json:"banker_id" validate:"required"`
	BankerName        string    `json:"banker_name" validate:"required"`
	MeetDate          time.Time `json:"meet_date" validate:"required"`
	MeetType          string    `json:"meet_type" validate:"required"`
	MeetTranscription string    `json:"meet_transcription" validate:"required"`
}

// NormalizedInput is the canonical pipeline input. Optional fields are nil when
// the caller did not supply them.
type NormalizedInput struct {
	Transcript   string
	MeetingID    *string
	CustomerID   *string
	CustomerName *string
	BankerID     *string
	BankerName   *string
	MeetingType  *string
	MeetingDate  *time.Time
}

// HasMetadata reports whether any metadata field is present
func (in NormalizedInput) HasMetadata() bool {
	return in.MeetingID != nil || in.CustomerID != nil || in.CustomerName != nil ||
		in.BankerID != nil || in.BankerName != nil || in.MeetingType != nil || in.MeetingDate != nil
}
