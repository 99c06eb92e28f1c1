package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MissingIdentityKey is stamped on results whose input lacks identity fields.
// It is never used as a cache key.
const MissingIdentityKey = "no-idempotency-key-available"

// DeriveIdentityKey returns the hex SHA-256 of meetingId + meetingDate + customerId.
// The date is formatted in UTC as RFC 3339. ok is false when any part is absent.
func DeriveIdentityKey(in entities.NormalizedInput) (key string, ok bool) {
	if in.MeetingID == nil || *in.MeetingID == "" ||
		in.CustomerID == nil || *in.CustomerID == "" ||
		in.MeetingDate == nil {
		return "", false
	}

	raw := *in.MeetingID + in.MeetingDate.UTC().Format(time.RFC3339Nano) + *in.CustomerID
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:]), true
}

func storageKey(v entities.Variant, key string) string {
	return string(v) + ":" + key
}
