package repositories

import (
	"context"
	"time"

	"kitesync/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SyncLogRepository interface {
	StartSync(ctx context.Context, userID int64, resource models.ResourceType, startedAt time.Time) (*models.SyncLog, error)
	CompleteSync(ctx context.Context, logID int64, completedAt time.Time, recordCount int, status models.SyncStatus, errorDetail *string) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]models.SyncLog, error)
}

type syncLogRepo struct {
	db *pgxpool.Pool
}

func NewSyncLogRepository(db *pgxpool.Pool) SyncLogRepository {
	return &syncLogRepo{db: db}
}

// StartSync opens a ledger row for one sync invocation. Timestamps come from
// the caller so the whole sync runs on one clock.
func (r *syncLogRepo) StartSync(ctx context.Context, userID int64, resource models.ResourceType, startedAt time.Time) (*models.SyncLog, error) {
	log := &models.SyncLog{
		UserID:    userID,
		Resource:  resource,
		StartedAt: startedAt,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO sync_logs (user_id, resource, started_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, log.UserID, log.Resource, log.StartedAt).Scan(&log.ID)
	if err != nil {
		return nil, err
	}
	return log, nil
}

// CompleteSync closes the ledger row. Rows are completed exactly once and
// immutable afterwards; the WHERE clause keeps a double completion from
// overwriting the first outcome.
func (r *syncLogRepo) CompleteSync(ctx context.Context, logID int64, completedAt time.Time, recordCount int, status models.SyncStatus, errorDetail *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE sync_logs
		SET completed_at = $2, record_count = $3, status = $4, error_detail = $5
		WHERE id = $1 AND completed_at IS NULL
	`, logID, completedAt, recordCount, status, errorDetail)
	return err
}

func (r *syncLogRepo) GetByUserID(ctx context.Context, userID int64, limit int) ([]models.SyncLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, resource, started_at, completed_at, record_count, status, error_detail
		FROM sync_logs
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.SyncLog
	for rows.Next() {
		var l models.SyncLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Resource, &l.StartedAt, &l.CompletedAt,
			&l.RecordCount, &l.Status, &l.ErrorDetail); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
