package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PipelineRun is the audit row written once per Extract or Analyze call
type PipelineRun struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RequestID       string         `json:"request_id" gorm:"type:varchar(64);not null;index"`
	Variant         Variant        `json:"variant" gorm:"type:varchar(16);not null"`
	IdentityKey     *string        `json:"identity_key,omitempty" gorm:"type:char(64)"`
	Outcome         string         `json:"outcome" gorm:"type:varchar(16);not null"`
	ErrorKind       *string        `json:"error_kind,omitempty" gorm:"type:varchar(32)"`
	ErrorMessage    *string        `json:"error_message,omitempty" gorm:"type:text"`
	Violations      datatypes.JSON `json:"violations" gorm:"type:jsonb;not null;default:'[]'"`
	DurationMs      int64          `json:"duration_ms" gorm:"not null"`
	TranscriptChars int            `json:"transcript_chars" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name
func (PipelineRun) TableName() string {
	return "pipeline_runs"
}
