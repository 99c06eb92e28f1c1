package meeting

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/pkg/validator"
)

func newValidator() *validator.CustomValidator {
	v := validator.New()
	v.RegisterStructValidation(ValidateMeetingRequest, MeetingRequest{})
	return v
}

func decode(t *testing.T, body string) MeetingRequest {
	t.Helper()
	var req MeetingRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

const rawMeeting = `{"raw_meeting": {
	"meet_id": "MTG123", "customer_id": "CUST456", "customer_name": "ACME S.A.",
	"customer_email": "cfo@acme.test", "banker_id": "BKR789", "banker_name": "Pedro",
	"meet_date": "2025-09-10T14:30:00Z", "meet_type": "Primeira Reunião",
	"meet_transcription": "Cliente: Bom dia"}}`

func TestValidateMeetingRequest(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
		field string
	}{
		{"transcript only", `{"transcript": "hello"}`, true, ""},
		{"transcript with metadata", `{"transcript": "hello", "metadata": {"meeting_id": "M1", "meet_date": "2025-01-01T00:00:00Z"}}`, true, ""},
		{"raw meeting", rawMeeting, true, ""},
		{"neither", `{}`, false, "transcript"},
		{"both", `{"transcript": "x", "raw_meeting": {}}`, false, "transcript"},
		{"blank transcript", `{"transcript": "   "}`, false, "transcript"},
		{"raw meeting missing fields", `{"raw_meeting": {"meet_id": "M1"}}`, false, "raw_meeting.customer_id"},
		{"bad email", `{"raw_meeting": {"meet_id": "M", "customer_id": "C", "customer_name": "N", "customer_email": "nope",
			"banker_id": "B", "banker_name": "P", "meet_date": "2025-01-01T00:00:00Z", "meet_type": "T", "meet_transcription": "x"}}`, false, "raw_meeting.customer_email"},
	}
	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(decode(t, tt.body))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, validator.Fields(err), tt.field)
		})
	}
}

func TestToNormalized(t *testing.T) {
	in := decode(t, rawMeeting).ToNormalized()
	assert.Equal(t, "Cliente: Bom dia", in.Transcript)
	assert.Equal(t, "MTG123", *in.MeetingID)
	assert.True(t, in.MeetingDate.Equal(time.Date(2025, 9, 10, 14, 30, 0, 0, time.UTC)))

	in = decode(t, `{"transcript": "hello", "metadata": {"customer_id": "C1"}}`).ToNormalized()
	assert.Equal(t, "hello", in.Transcript)
	assert.Equal(t, "C1", *in.CustomerID)
	assert.Nil(t, in.MeetingID)
}
