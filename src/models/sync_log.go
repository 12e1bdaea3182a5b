package models

import "time"

type ResourceType string

const (
	ResourceHolding  ResourceType = "HOLDING"
	ResourcePosition ResourceType = "POSITION"
	ResourceOrder    ResourceType = "ORDER"
)

type SyncStatus string

const (
	SyncSuccess SyncStatus = "SUCCESS"
	SyncFailed  SyncStatus = "FAILED"
)

// SyncLog is one row per sync invocation: opened at sync start, completed
// exactly once at sync end, immutable afterwards.
type SyncLog struct {
	ID          int64        `db:"id" json:"id"`
	UserID      int64        `db:"user_id" json:"userId"`
	Resource    ResourceType `db:"resource" json:"resource"`
	StartedAt   time.Time    `db:"started_at" json:"startedAt"`
	CompletedAt *time.Time   `db:"completed_at" json:"completedAt"`
	RecordCount int          `db:"record_count" json:"recordCount"`
	Status      *SyncStatus  `db:"status" json:"status"`
	ErrorDetail *string      `db:"error_detail" json:"errorDetail"`
}
