package services_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"kitesync/src/clients/kite"
	"kitesync/src/models"
)

// fakeKiteClient serves canned payloads and counts calls so tests can assert
// that unauthenticated syncs never reach the network.
type fakeKiteClient struct {
	holdings  []kite.HoldingSchema
	positions kite.PositionsSchema
	orders    []kite.OrderSchema
	session   *kite.SessionTokenSchema

	holdingsErr  error
	positionsErr error
	ordersErr    error
	sessionErr   error

	lastRequestToken string
	calls            int
}

func (c *fakeKiteClient) BuildLoginURL(state string) string {
	return "https://kite.zerodha.com/connect/login?api_key=test_key&redirect_params=" + state
}

func (c *fakeKiteClient) PostSessionToken(_ context.Context, requestToken, _ string) (*kite.SessionTokenSchema, error) {
	c.calls++
	c.lastRequestToken = requestToken
	if c.sessionErr != nil {
		return nil, c.sessionErr
	}
	if c.session != nil {
		return c.session, nil
	}
	return &kite.SessionTokenSchema{UserID: "AB1234", AccessToken: "tok-1"}, nil
}

func (c *fakeKiteClient) GetHoldings(_ context.Context, _ string) ([]kite.HoldingSchema, error) {
	c.calls++
	return c.holdings, c.holdingsErr
}

func (c *fakeKiteClient) GetPositions(_ context.Context, _ string) (*kite.PositionsSchema, error) {
	c.calls++
	if c.positionsErr != nil {
		return nil, c.positionsErr
	}
	positions := c.positions
	return &positions, nil
}

func (c *fakeKiteClient) GetOrders(_ context.Context, _ string) ([]kite.OrderSchema, error) {
	c.calls++
	return c.orders, c.ordersErr
}

type memHoldingRepo struct {
	rows   map[string]models.Holding
	nextID int64
	err    error
}

func newMemHoldingRepo() *memHoldingRepo {
	return &memHoldingRepo{rows: map[string]models.Holding{}}
}

func holdingKey(userID int64, symbol string) string {
	return fmt.Sprintf("%d|%s", userID, symbol)
}

func (r *memHoldingRepo) GetByUserID(_ context.Context, userID int64) ([]models.Holding, error) {
	var out []models.Holding
	for _, h := range r.rows {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TradingSymbol < out[j].TradingSymbol })
	return out, nil
}

func (r *memHoldingRepo) UpsertAll(_ context.Context, userID int64, holdings []models.Holding) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	for _, h := range holdings {
		key := holdingKey(userID, h.TradingSymbol)
		if existing, ok := r.rows[key]; ok {
			h.ID = existing.ID
		} else {
			r.nextID++
			h.ID = r.nextID
		}
		r.rows[key] = h
	}
	return len(holdings), nil
}

type memPositionRepo struct {
	rows   []models.Position
	nextID int64
}

func (r *memPositionRepo) GetByUserID(_ context.Context, userID int64) ([]models.Position, error) {
	var out []models.Position
	for _, p := range r.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPositionRepo) ReplaceAll(_ context.Context, userID int64, positions []models.Position) (int, error) {
	var kept []models.Position
	for _, p := range r.rows {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	for _, p := range positions {
		r.nextID++
		p.ID = r.nextID
		kept = append(kept, p)
	}
	r.rows = kept
	return len(positions), nil
}

type memOrderRepo struct {
	rows   map[string]models.Order
	nextID int64
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{rows: map[string]models.Order{}}
}

func (r *memOrderRepo) GetByUserID(_ context.Context, userID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.rows {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpsertAll(_ context.Context, userID int64, orders []models.Order) (int, error) {
	for _, o := range orders {
		if existing, ok := r.rows[o.OrderID]; ok {
			o.ID = existing.ID
		} else {
			r.nextID++
			o.ID = r.nextID
		}
		r.rows[o.OrderID] = o
	}
	return len(orders), nil
}

type memSyncLogRepo struct {
	logs   []*models.SyncLog
	nextID int64
}

func (r *memSyncLogRepo) StartSync(_ context.Context, userID int64, resource models.ResourceType, startedAt time.Time) (*models.SyncLog, error) {
	r.nextID++
	log := &models.SyncLog{
		ID:        r.nextID,
		UserID:    userID,
		Resource:  resource,
		StartedAt: startedAt,
	}
	r.logs = append(r.logs, log)
	return log, nil
}

func (r *memSyncLogRepo) CompleteSync(_ context.Context, logID int64, completedAt time.Time, recordCount int, status models.SyncStatus, errorDetail *string) error {
	for _, log := range r.logs {
		if log.ID == logID && log.CompletedAt == nil {
			log.CompletedAt = &completedAt
			log.RecordCount = recordCount
			log.Status = &status
			log.ErrorDetail = errorDetail
		}
	}
	return nil
}

func (r *memSyncLogRepo) GetByUserID(_ context.Context, userID int64, _ int) ([]models.SyncLog, error) {
	var out []models.SyncLog
	for _, log := range r.logs {
		if log.UserID == userID {
			out = append(out, *log)
		}
	}
	return out, nil
}

type memUserRepo struct {
	users map[int64]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	repo := &memUserRepo{users: map[int64]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepo) UpdateKiteCredentials(_ context.Context, userID int64, kiteUserID, accessToken string, expiry time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	u.KiteUserID = &kiteUserID
	u.KiteAccessToken = &accessToken
	u.KiteTokenExpiry = &expiry
	return nil
}

func authedUser(id int64, username string) *models.User {
	token := "tok-1"
	expiry := time.Now().Add(time.Hour)
	return &models.User{
		ID:              id,
		Username:        username,
		KiteAccessToken: &token,
		KiteTokenExpiry: &expiry,
	}
}
