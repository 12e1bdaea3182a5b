package services

import (
	"context"

	"kitesync/src/models"
	"kitesync/src/repositories"
	"kitesync/src/schemas"
	"kitesync/src/utils"
)

type BatchSyncServiceI interface {
	RunDailySync(ctx context.Context)
}

// BatchSyncService runs the daily sweep over every authenticated user. Users
// are processed strictly sequentially to keep load on the broker API bounded.
type BatchSyncService struct {
	userRepo    repositories.UserRepository
	syncService SyncServiceI
}

func NewBatchSyncService(userRepo repositories.UserRepository, syncService SyncServiceI) *BatchSyncService {
	return &BatchSyncService{
		userRepo:    userRepo,
		syncService: syncService,
	}
}

// RunDailySync syncs holdings, positions, then orders for each user holding
// an access token. A FAILED outcome for one user never stops the batch;
// users without a token are skipped.
func (s *BatchSyncService) RunDailySync(ctx context.Context) {
	logger := utils.LoggerFromContext(ctx)
	logger.Info("starting scheduled Kite sync")

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		logger.Errorf("could not list users for scheduled sync: %v", err)
		return
	}

	for i := range users {
		user := &users[i]
		if user.KiteAccessToken == nil || *user.KiteAccessToken == "" {
			continue
		}

		logger.Infof("syncing Kite data for user %s", user.Username)
		s.reportOutcome(ctx, user, models.ResourceHolding, s.syncService.SyncHoldings(ctx, user))
		s.reportOutcome(ctx, user, models.ResourcePosition, s.syncService.SyncPositions(ctx, user))
		s.reportOutcome(ctx, user, models.ResourceOrder, s.syncService.SyncOrders(ctx, user))
	}

	logger.Info("scheduled Kite sync completed")
}

func (s *BatchSyncService) reportOutcome(ctx context.Context, user *models.User, resource models.ResourceType, outcome schemas.SyncOutcome) {
	logger := utils.LoggerFromContext(ctx)
	if outcome.Status == models.SyncFailed {
		logger.Errorf("%s sync failed for user %s: %s", resource, user.Username, outcome.Message)
		return
	}
	logger.Infof("%s sync for user %s: %d records", resource, user.Username, outcome.RecordCount)
}
