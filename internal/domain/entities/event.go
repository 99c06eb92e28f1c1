package entities

import "time"

// EventType names a pipeline notification
type EventType string

const (
	EventCacheHit        EventType = "cacheHit"
	EventCacheMiss       EventType = "cacheMiss"
	EventCacheSave       EventType = "cacheSave"
	EventCacheExpire     EventType = "cacheExpire"
	EventRetryAttempt    EventType = "retryAttempt"
	EventRepairAttempted EventType = "repairAttempted"
)

// Event is an advisory notification for observers. Only the fields relevant
// to Type are set.
type Event struct {
	Type EventType
	At   time.Time

	// cache events
	Key string
	Age time.Duration

	// retryAttempt
	AttemptNumber int
	WaitSeconds   float64
	ErrorKind     TransientKind

	// repairAttempted
	Success bool
	Variant Variant

	RequestID string
}
