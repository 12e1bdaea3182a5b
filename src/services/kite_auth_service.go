package services

import (
	"context"
	"fmt"
	"time"

	"kitesync/src/clients/kite"
	"kitesync/src/repositories"
	"kitesync/src/utils"

	"github.com/google/uuid"
)

// kiteSessionLifetime is Zerodha's fixed session length. It is not returned
// by the API and not configurable.
const kiteSessionLifetime = 24 * time.Hour

// stateTTL bounds how long a pending login may take before its state token
// expires.
const stateTTL = 10 * time.Minute

// StateStore keeps the one-time state → user mapping between the login
// redirect and the callback. Backed by redis in production.
type StateStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, result interface{}) error
	Delete(ctx context.Context, key string) error
}

type KiteAuthServiceI interface {
	GetAuthorizationURL(ctx context.Context, userID int64) (string, error)
	HandleCallback(ctx context.Context, requestToken, state string) error
	ExchangeToken(ctx context.Context, requestToken string) (*kite.SessionTokenSchema, error)
}

type KiteAuthService struct {
	userRepo   repositories.UserRepository
	kiteClient kite.KiteServiceClientI
	states     StateStore
	apiSecret  string

	now func() time.Time
}

func NewKiteAuthService(userRepo repositories.UserRepository, kiteClient kite.KiteServiceClientI, states StateStore, apiSecret string) *KiteAuthService {
	return &KiteAuthService{
		userRepo:   userRepo,
		kiteClient: kiteClient,
		states:     states,
		apiSecret:  apiSecret,
		now:        time.Now,
	}
}

func stateKey(state string) string {
	return "kite:state:" + state
}

// GetAuthorizationURL generates a state token for the user, stores the
// mapping, and returns the login redirect embedding it.
func (s *KiteAuthService) GetAuthorizationURL(ctx context.Context, userID int64) (string, error) {
	state := uuid.NewString()
	if err := s.states.Set(ctx, stateKey(state), userID, stateTTL); err != nil {
		return "", utils.NewStorageError("could not store auth state", err)
	}
	return s.kiteClient.BuildLoginURL(state), nil
}

// ExchangeToken turns a one-time request token into a durable access token.
func (s *KiteAuthService) ExchangeToken(ctx context.Context, requestToken string) (*kite.SessionTokenSchema, error) {
	return s.kiteClient.PostSessionToken(ctx, requestToken, s.apiSecret)
}

// HandleCallback resolves the state back to the initiating user, performs the
// token exchange, and persists the access token with its expiry. The state
// mapping is consumed on success.
func (s *KiteAuthService) HandleCallback(ctx context.Context, requestToken, state string) error {
	var userID int64
	if err := s.states.Get(ctx, stateKey(state), &userID); err != nil {
		return utils.NewAuthError("unknown or expired state token", err)
	}

	session, err := s.ExchangeToken(ctx, requestToken)
	if err != nil {
		return err
	}

	expiry := s.now().UTC().Add(kiteSessionLifetime)
	if err := s.userRepo.UpdateKiteCredentials(ctx, userID, session.UserID, session.AccessToken, expiry); err != nil {
		return utils.NewStorageError(fmt.Sprintf("could not persist credentials for user %d", userID), err)
	}

	if err := s.states.Delete(ctx, stateKey(state)); err != nil {
		// the key still expires via its TTL
		utils.LoggerFromContext(ctx).Warnf("could not delete auth state %s: %v", state, err)
	}
	return nil
}
