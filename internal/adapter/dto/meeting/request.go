package meeting

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/pipeline"
)

// MeetingRequest is the body of POST /v1/extract and POST /v1/analyze. Exactly
// one of Transcript or RawMeeting must be set; Metadata is ignored with RawMeeting.
type MeetingRequest struct {
	Transcript *string              `json:"transcript,omitempty" example:"Banker: Good morning..."`
	Metadata   *entities.Metadata   `json:"metadata,omitempty"`
	RawMeeting *entities.RawMeeting `json:"raw_meeting,omitempty"`
}

// ToNormalized maps the request to the pipeline input
func (r MeetingRequest) ToNormalized() entities.NormalizedInput {
	if r.RawMeeting != nil {
		return pipeline.NormalizeRawMeeting(*r.RawMeeting)
	}
	var transcript string
	if r.Transcript != nil {
		transcript = *r.Transcript
	}
	return pipeline.NormalizeTranscript(transcript, r.Metadata)
}

// ValidateMeetingRequest is the struct level rule for MeetingRequest
func ValidateMeetingRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(MeetingRequest)

	hasTranscript := req.Transcript != nil
	hasRaw := req.RawMeeting != nil

	switch {
	case hasTranscript && hasRaw:
		sl.ReportError(req.Transcript, "transcript", "Transcript", "xor_raw_meeting", "")
	case !hasTranscript && !hasRaw:
		sl.ReportError(req.Transcript, "transcript", "Transcript", "required_without_raw_meeting", "")
	case hasTranscript && strings.TrimSpace(*req.Transcript) == "":
		sl.ReportError(req.Transcript, "transcript", "Transcript", "notblank", "")
	}
}
