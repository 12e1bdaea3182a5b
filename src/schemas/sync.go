package schemas

import "kitesync/src/models"

// SyncOutcome is the structured result of one sync unit (one user, one
// resource type). Pipelines always return it, never a raw error.
type SyncOutcome struct {
	Status      models.SyncStatus `json:"status"`
	RecordCount int               `json:"recordCount"`
	Message     string            `json:"message"`
}

func SuccessOutcome(recordCount int, message string) SyncOutcome {
	return SyncOutcome{Status: models.SyncSuccess, RecordCount: recordCount, Message: message}
}

func FailedOutcome(message string) SyncOutcome {
	return SyncOutcome{Status: models.SyncFailed, Message: message}
}
