package services

import (
	"context"
	"fmt"
	"time"

	"kitesync/src/clients/kite"
	"kitesync/src/models"
	"kitesync/src/repositories"
	"kitesync/src/schemas"
	"kitesync/src/utils"
)

type SyncServiceI interface {
	SyncHoldings(ctx context.Context, user *models.User) schemas.SyncOutcome
	SyncPositions(ctx context.Context, user *models.User) schemas.SyncOutcome
	SyncOrders(ctx context.Context, user *models.User) schemas.SyncOutcome
	GetHoldings(ctx context.Context, userID int64) ([]models.Holding, error)
	GetPositions(ctx context.Context, userID int64) ([]models.Position, error)
	GetOrders(ctx context.Context, userID int64) ([]models.Order, error)
	GetSyncLogs(ctx context.Context, userID int64, limit int) ([]models.SyncLog, error)
}

// SyncService drives the fetch → parse → map → reconcile → log pipeline for
// each resource type. It is the error boundary for one sync unit: failures
// come back as a FAILED outcome, never as a raised error.
type SyncService struct {
	holdingRepo  repositories.HoldingRepository
	positionRepo repositories.PositionRepository
	orderRepo    repositories.OrderRepository
	syncLogRepo  repositories.SyncLogRepository

	kiteClient kite.KiteServiceClientI

	now func() time.Time
}

func NewSyncService(
	holdingRepo repositories.HoldingRepository,
	positionRepo repositories.PositionRepository,
	orderRepo repositories.OrderRepository,
	syncLogRepo repositories.SyncLogRepository,
	kiteClient kite.KiteServiceClientI,
) *SyncService {
	return &SyncService{
		holdingRepo:  holdingRepo,
		positionRepo: positionRepo,
		orderRepo:    orderRepo,
		syncLogRepo:  syncLogRepo,
		kiteClient:   kiteClient,
		now:          time.Now,
	}
}

// syncUnit wires one resource type into the generic pipeline: how to fetch
// its records, how to map them to rows, and which reconciliation strategy
// merges them into storage.
type syncUnit[R any, M any] struct {
	resource  models.ResourceType
	fetch     func(ctx context.Context, accessToken string) ([]R, error)
	mapRecord func(rec R, userID int64, syncedAt time.Time) (M, error)
	reconcile func(ctx context.Context, userID int64, records []M) (int, error)
}

// SyncHoldings upserts the user's holdings keyed by trading symbol. Rows
// absent from the current fetch are kept (partial remote responses are
// tolerated).
func (s *SyncService) SyncHoldings(ctx context.Context, user *models.User) schemas.SyncOutcome {
	return runSync(ctx, s, user, syncUnit[kite.HoldingSchema, models.Holding]{
		resource:  models.ResourceHolding,
		fetch:     s.kiteClient.GetHoldings,
		mapRecord: mapHolding,
		reconcile: s.holdingRepo.UpsertAll,
	})
}

// SyncPositions replaces the user's position set with the remote net
// snapshot. Positions carry no stable key, so upserting is not an option.
func (s *SyncService) SyncPositions(ctx context.Context, user *models.User) schemas.SyncOutcome {
	return runSync(ctx, s, user, syncUnit[kite.PositionSchema, models.Position]{
		resource: models.ResourcePosition,
		fetch: func(ctx context.Context, accessToken string) ([]kite.PositionSchema, error) {
			positions, err := s.kiteClient.GetPositions(ctx, accessToken)
			if err != nil {
				return nil, err
			}
			if positions == nil {
				return nil, nil
			}
			return positions.Net, nil
		},
		mapRecord: mapPosition,
		reconcile: s.positionRepo.ReplaceAll,
	})
}

// SyncOrders upserts the user's orders keyed by the broker order id.
func (s *SyncService) SyncOrders(ctx context.Context, user *models.User) schemas.SyncOutcome {
	return runSync(ctx, s, user, syncUnit[kite.OrderSchema, models.Order]{
		resource:  models.ResourceOrder,
		fetch:     s.kiteClient.GetOrders,
		mapRecord: mapOrder,
		reconcile: s.orderRepo.UpsertAll,
	})
}

// runSync is the pipeline for one sync unit. The ledger row opens before any
// other work and completes exactly once, on every path out.
func runSync[R any, M any](ctx context.Context, s *SyncService, user *models.User, unit syncUnit[R, M]) schemas.SyncOutcome {
	logger := utils.LoggerFromContext(ctx)

	syncLog, err := s.syncLogRepo.StartSync(ctx, user.ID, unit.resource, s.now().UTC())
	if err != nil {
		logger.Errorf("could not open sync log for user %d resource %s: %v", user.ID, unit.resource, err)
		return schemas.FailedOutcome(utils.NewStorageError("could not record sync start", err).Error())
	}

	outcome := executeSync(ctx, s, user, unit)

	status := models.SyncSuccess
	var errorDetail *string
	if outcome.Status == models.SyncFailed {
		status = models.SyncFailed
		detail := outcome.Message
		errorDetail = &detail
		logger.Errorf("sync failed for user %d resource %s: %s", user.ID, unit.resource, outcome.Message)
	}

	if err := s.syncLogRepo.CompleteSync(ctx, syncLog.ID, s.now().UTC(), outcome.RecordCount, status, errorDetail); err != nil {
		logger.Errorf("could not complete sync log %d: %v", syncLog.ID, err)
	}
	return outcome
}

func executeSync[R any, M any](ctx context.Context, s *SyncService, user *models.User, unit syncUnit[R, M]) schemas.SyncOutcome {
	if !user.HasKiteToken(s.now()) {
		return schemas.FailedOutcome(utils.NewAuthError("user not authenticated with Kite", nil).Error())
	}

	records, err := unit.fetch(ctx, *user.KiteAccessToken)
	if err != nil {
		return schemas.FailedOutcome(err.Error())
	}

	syncedAt := s.now().UTC()
	mapped := make([]M, 0, len(records))
	for _, rec := range records {
		row, err := unit.mapRecord(rec, user.ID, syncedAt)
		if err != nil {
			return schemas.FailedOutcome(utils.NewParseError("could not map remote record", err).Error())
		}
		mapped = append(mapped, row)
	}

	count, err := unit.reconcile(ctx, user.ID, mapped)
	if err != nil {
		if utils.KindOf(err) == "" {
			err = utils.NewStorageError("could not persist synced records", err)
		}
		return schemas.FailedOutcome(err.Error())
	}

	return schemas.SuccessOutcome(count, fmt.Sprintf("%s sync completed", unit.resource))
}

func (s *SyncService) GetHoldings(ctx context.Context, userID int64) ([]models.Holding, error) {
	return s.holdingRepo.GetByUserID(ctx, userID)
}

func (s *SyncService) GetPositions(ctx context.Context, userID int64) ([]models.Position, error) {
	return s.positionRepo.GetByUserID(ctx, userID)
}

func (s *SyncService) GetOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}

func (s *SyncService) GetSyncLogs(ctx context.Context, userID int64, limit int) ([]models.SyncLog, error) {
	return s.syncLogRepo.GetByUserID(ctx, userID, limit)
}
