package controllers

import (
	"context"
	"fmt"

	"kitesync/src/models"
	"kitesync/src/schemas"
	"kitesync/src/utils"
)

func (c *Controller) GetAuthorizationURL(ctx context.Context, userID int64) (*schemas.AuthURLResponse, error) {
	if _, err := c.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	url, err := c.AuthService.GetAuthorizationURL(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &schemas.AuthURLResponse{AuthorizationURL: url}, nil
}

func (c *Controller) HandleCallback(ctx context.Context, requestToken, state string) error {
	return c.AuthService.HandleCallback(ctx, requestToken, state)
}

func (c *Controller) SyncHoldings(ctx context.Context, userID int64) (*schemas.SyncOutcome, error) {
	user, err := c.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	outcome := c.SyncService.SyncHoldings(ctx, user)
	return &outcome, nil
}

func (c *Controller) SyncPositions(ctx context.Context, userID int64) (*schemas.SyncOutcome, error) {
	user, err := c.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	outcome := c.SyncService.SyncPositions(ctx, user)
	return &outcome, nil
}

func (c *Controller) SyncOrders(ctx context.Context, userID int64) (*schemas.SyncOutcome, error) {
	user, err := c.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	outcome := c.SyncService.SyncOrders(ctx, user)
	return &outcome, nil
}

func (c *Controller) GetHoldings(ctx context.Context, userID int64) ([]models.Holding, error) {
	return c.SyncService.GetHoldings(ctx, userID)
}

func (c *Controller) GetPositions(ctx context.Context, userID int64) ([]models.Position, error) {
	return c.SyncService.GetPositions(ctx, userID)
}

func (c *Controller) GetOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return c.SyncService.GetOrders(ctx, userID)
}

func (c *Controller) GetSyncLogs(ctx context.Context, userID int64, limit int) ([]models.SyncLog, error) {
	return c.SyncService.GetSyncLogs(ctx, userID, limit)
}

func (c *Controller) requireUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := c.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound(fmt.Sprintf("user %d not found", userID))
	}
	return user, nil
}
