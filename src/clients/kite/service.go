package kite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kitesync/src/config"
	"kitesync/src/utils"
	requests "kitesync/src/utils/requests"
)

const kiteAPIVersion = "3"

type KiteServiceClientI interface {
	BuildLoginURL(state string) string
	PostSessionToken(ctx context.Context, requestToken, apiSecret string) (*SessionTokenSchema, error)
	GetHoldings(ctx context.Context, accessToken string) ([]HoldingSchema, error)
	GetPositions(ctx context.Context, accessToken string) (*PositionsSchema, error)
	GetOrders(ctx context.Context, accessToken string) ([]OrderSchema, error)
}

// KiteServiceClient is a struct that uses ExternalAPIService to interact with the Kite Connect API
type KiteServiceClient struct {
	API      *requests.ExternalAPIService
	BaseURL  string
	LoginURL string
	APIKey   string
}

// NewClient creates a new instance of KiteServiceClient
func NewClient(cfg *config.Config) *KiteServiceClient {
	api := requests.NewExternalAPIService(time.Duration(cfg.ExternalClients.Kite.RequestTimeout) * time.Second)
	return &KiteServiceClient{
		API:      api,
		BaseURL:  cfg.ExternalClients.Kite.BaseURL,
		LoginURL: cfg.ExternalClients.Kite.LoginURL,
		APIKey:   cfg.ExternalClients.Kite.APIKey,
	}
}

// BuildLoginURL constructs the browser-facing Kite login redirect. The state
// token travels through redirect_params and comes back on the callback.
func (s *KiteServiceClient) BuildLoginURL(state string) string {
	params := url.Values{}
	params.Set("api_key", s.APIKey)
	params.Set("redirect_params", state)
	return s.LoginURL + "?" + params.Encode()
}

// PostSessionToken exchanges a one-time request token for an access token.
// Every failure mode of the exchange (network, status, body shape) surfaces
// as an auth error since the caller cannot distinguish them usefully.
func (s *KiteServiceClient) PostSessionToken(ctx context.Context, requestToken, apiSecret string) (*SessionTokenSchema, error) {
	body := map[string]string{
		"api_key":       s.APIKey,
		"request_token": requestToken,
		"checksum":      Checksum(s.APIKey, requestToken, apiSecret),
	}
	headers := map[string]string{
		"X-Kite-Version": kiteAPIVersion,
	}

	resp, err := s.API.Post(ctx, s.BaseURL+"/session/token", nil, body, headers)
	if err != nil {
		return nil, utils.NewAuthError("token exchange request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewAuthError(fmt.Sprintf("token exchange rejected with status %d", resp.StatusCode), nil)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.NewAuthError("failed to read token response", err)
	}

	var env Envelope
	if err := json.Unmarshal(responseBody, &env); err != nil {
		return nil, utils.NewAuthError("token response is not valid JSON", err)
	}

	var session SessionTokenSchema
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &session); err != nil {
			return nil, utils.NewAuthError("token response data has unexpected shape", err)
		}
	}
	if session.AccessToken == "" {
		return nil, utils.NewAuthError("access token missing in token response", nil)
	}
	return &session, nil
}

// GetHoldings retrieves the user's holdings
func (s *KiteServiceClient) GetHoldings(ctx context.Context, accessToken string) ([]HoldingSchema, error) {
	data, err := s.getResource(ctx, "/portfolio/holdings", accessToken)
	if err != nil {
		return nil, err
	}

	var holdings []HoldingSchema
	ok, err := decodeArray(data, &holdings)
	if err != nil {
		return nil, utils.NewParseError("holdings data has unexpected shape", err)
	}
	if !ok {
		// Missing or non-array payload means an empty portfolio.
		return nil, nil
	}
	return holdings, nil
}

// GetPositions retrieves the user's open positions. The payload nests the
// snapshot under data.net.
func (s *KiteServiceClient) GetPositions(ctx context.Context, accessToken string) (*PositionsSchema, error) {
	data, err := s.getResource(ctx, "/portfolio/positions", accessToken)
	if err != nil {
		return nil, err
	}

	var positions PositionsSchema
	if len(data) == 0 || string(data) == "null" {
		return &positions, nil
	}
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, utils.NewParseError("positions data has unexpected shape", err)
	}
	return &positions, nil
}

// GetOrders retrieves the user's orders for the day
func (s *KiteServiceClient) GetOrders(ctx context.Context, accessToken string) ([]OrderSchema, error) {
	data, err := s.getResource(ctx, "/orders", accessToken)
	if err != nil {
		return nil, err
	}

	var orders []OrderSchema
	ok, err := decodeArray(data, &orders)
	if err != nil {
		return nil, utils.NewParseError("orders data has unexpected shape", err)
	}
	if !ok {
		return nil, nil
	}
	return orders, nil
}

// getResource performs an authenticated GET and unwraps the response
// envelope. Network and status failures are remote errors, a malformed body
// is a parse error.
func (s *KiteServiceClient) getResource(ctx context.Context, path, accessToken string) (json.RawMessage, error) {
	headers := map[string]string{
		"X-Kite-Version": kiteAPIVersion,
		"Authorization":  "token " + s.APIKey + ":" + accessToken,
	}

	resp, err := s.API.Get(ctx, s.BaseURL+path, nil, headers)
	if err != nil {
		return nil, utils.NewRemoteError(fmt.Sprintf("GET %s failed", path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, utils.NewRemoteError(fmt.Sprintf("GET %s returned status %d", path, resp.StatusCode), nil)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.NewRemoteError(fmt.Sprintf("failed to read %s response", path), err)
	}

	var env Envelope
	if err := json.Unmarshal(responseBody, &env); err != nil {
		return nil, utils.NewParseError(fmt.Sprintf("%s response is not valid JSON", path), err)
	}
	return env.Data, nil
}

// decodeArray unmarshals data into out. An absent, null, or non-array
// payload reports false with no error (empty portfolio); an array that fails
// to decode is an error.
func decodeArray(data json.RawMessage, out interface{}) (bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" || trimmed[0] != '[' {
		return false, nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return false, err
	}
	return true, nil
}
