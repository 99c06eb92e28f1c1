package pipeline

import (
	"strings"
	"time"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// NormalizeTranscript maps the transcript + metadata request shape. Empty
// metadata values are treated as absent.
func NormalizeTranscript(transcript string, meta *entities.Metadata) entities.NormalizedInput {
	in := entities.NormalizedInput{Transcript: transcript}
	if meta == nil {
		return in
	}
	in.MeetingID = optional(meta.MeetingID)
	in.CustomerID = optional(meta.CustomerID)
	in.CustomerName = optional(meta.CustomerName)
	in.BankerID = optional(meta.BankerID)
	in.BankerName = optional(meta.BankerName)
	in.MeetingType = optional(meta.MeetType)
	in.MeetingDate = optionalTime(meta.MeetDate)
	return in
}

// NormalizeRawMeeting maps the raw meeting request shape. customer_email is
// accepted upstream but does not take part in the pipeline.
func NormalizeRawMeeting(raw entities.RawMeeting) entities.NormalizedInput {
	var date *time.Time
	if !raw.MeetDate.IsZero() {
		date = optionalTime(&raw.MeetDate)
	}
	return entities.NormalizedInput{
		Transcript:   raw.MeetTranscription,
		MeetingID:    optional(raw.MeetID),
		CustomerID:   optional(raw.CustomerID),
		CustomerName: optional(raw.CustomerName),
		BankerID:     optional(raw.BankerID),
		BankerName:   optional(raw.BankerName),
		MeetingType:  optional(raw.MeetType),
		MeetingDate:  date,
	}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func optionalTime(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := *t
	return &v
}
