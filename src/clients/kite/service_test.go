package kite_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kitesync/src/clients/kite"
	"kitesync/src/config"
	"kitesync/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *kite.KiteServiceClient {
	cfg := &config.Config{}
	cfg.ExternalClients.Kite.APIKey = "test_key"
	cfg.ExternalClients.Kite.BaseURL = baseURL
	cfg.ExternalClients.Kite.LoginURL = "https://kite.zerodha.com/connect/login"
	cfg.ExternalClients.Kite.RequestTimeout = 5
	return kite.NewClient(cfg)
}

func TestBuildLoginURL(t *testing.T) {
	client := newTestClient("http://unused")

	url := client.BuildLoginURL("state-123")

	assert.Contains(t, url, "https://kite.zerodha.com/connect/login?")
	assert.Contains(t, url, "api_key=test_key")
	assert.Contains(t, url, "redirect_params=state-123")
}

func TestPostSessionToken(t *testing.T) {
	t.Run("returns session on success", func(t *testing.T) {
		var gotBody map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/session/token", r.URL.Path)
			assert.Equal(t, "3", r.Header.Get("X-Kite-Version"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			fmt.Fprint(w, `{"status":"success","data":{"user_id":"AB1234","access_token":"tok-1","public_token":"pub-1"}}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		session, err := client.PostSessionToken(context.Background(), "req-tok", "secret")

		require.NoError(t, err)
		assert.Equal(t, "tok-1", session.AccessToken)
		assert.Equal(t, "AB1234", session.UserID)

		assert.Equal(t, "test_key", gotBody["api_key"])
		assert.Equal(t, "req-tok", gotBody["request_token"])
		assert.Equal(t, kite.Checksum("test_key", "req-tok", "secret"), gotBody["checksum"])
	})

	t.Run("rejected exchange is an auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		session, err := client.PostSessionToken(context.Background(), "req-tok", "secret")

		require.Error(t, err)
		assert.Nil(t, session)
		assert.Equal(t, utils.AuthErrorKind, utils.KindOf(err))
	})

	t.Run("missing access token is an auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":"success","data":{"user_id":"AB1234"}}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.PostSessionToken(context.Background(), "req-tok", "secret")

		require.Error(t, err)
		assert.Equal(t, utils.AuthErrorKind, utils.KindOf(err))
	})

	t.Run("unreachable endpoint is an auth error", func(t *testing.T) {
		client := newTestClient("http://127.0.0.1:1")
		_, err := client.PostSessionToken(context.Background(), "req-tok", "secret")

		require.Error(t, err)
		assert.Equal(t, utils.AuthErrorKind, utils.KindOf(err))
	})
}

func TestGetHoldings(t *testing.T) {
	t.Run("parses records and auth header", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, "/portfolio/holdings", r.URL.Path)
			assert.Equal(t, "3", r.Header.Get("X-Kite-Version"))
			fmt.Fprint(w, `{"data":[{"tradingsymbol":"INFY","exchange":"NSE","isin":"INE009A01021","quantity":10,"average_price":"1450.00","last_price":"1500.00","pnl":"500.00","product":"CNC"}]}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		holdings, err := client.GetHoldings(context.Background(), "tok-1")

		require.NoError(t, err)
		assert.Equal(t, "token test_key:tok-1", gotAuth)
		require.Len(t, holdings, 1)
		h := holdings[0]
		assert.Equal(t, "INFY", h.TradingSymbol)
		assert.Equal(t, 10, h.Quantity)
		assert.True(t, h.AveragePrice.Equal(decimal.RequireFromString("1450.00")))
		assert.True(t, h.LastPrice.Equal(decimal.RequireFromString("1500.00")))
		assert.True(t, h.PnL.Equal(decimal.RequireFromString("500.00")))
	})

	t.Run("accepts numeric prices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":[{"tradingsymbol":"TCS","quantity":5,"average_price":3200.5,"last_price":3250}]}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		holdings, err := client.GetHoldings(context.Background(), "tok-1")

		require.NoError(t, err)
		require.Len(t, holdings, 1)
		assert.True(t, holdings[0].AveragePrice.Equal(decimal.RequireFromString("3200.5")))
	})

	t.Run("missing pnl maps to zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":[{"tradingsymbol":"TCS","quantity":5}]}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		holdings, err := client.GetHoldings(context.Background(), "tok-1")

		require.NoError(t, err)
		require.Len(t, holdings, 1)
		assert.True(t, holdings[0].PnL.IsZero())
	})

	t.Run("missing data payload yields zero records", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":"success"}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		holdings, err := client.GetHoldings(context.Background(), "tok-1")

		require.NoError(t, err)
		assert.Empty(t, holdings)
	})

	t.Run("non-2xx status is a remote error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GetHoldings(context.Background(), "tok-1")

		require.Error(t, err)
		assert.Equal(t, utils.RemoteErrorKind, utils.KindOf(err))
	})

	t.Run("malformed body is a parse error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json at all`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GetHoldings(context.Background(), "tok-1")

		require.Error(t, err)
		assert.Equal(t, utils.ParseErrorKind, utils.KindOf(err))
	})

	t.Run("malformed element is a parse error, not an empty portfolio", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":[{"tradingsymbol":"INFY","quantity":"not-a-number"}]}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		holdings, err := client.GetHoldings(context.Background(), "tok-1")

		require.Error(t, err)
		assert.Equal(t, utils.ParseErrorKind, utils.KindOf(err))
		assert.Nil(t, holdings)
	})
}

func TestGetPositions(t *testing.T) {
	t.Run("reads the net view", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/portfolio/positions", r.URL.Path)
			fmt.Fprint(w, `{"data":{"net":[{"tradingsymbol":"NIFTY24SEPFUT","exchange":"NFO","product":"NRML","quantity":50,"buy_quantity":75,"sell_quantity":25,"average_price":"22150.00","last_price":"22300.00","pnl":"7500.00","unrealised":"7500.00","realised":"0"}],"day":[]}}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		positions, err := client.GetPositions(context.Background(), "tok-1")

		require.NoError(t, err)
		require.Len(t, positions.Net, 1)
		p := positions.Net[0]
		assert.Equal(t, 75, p.BuyQuantity)
		assert.True(t, p.UnrealisedPnL.Equal(decimal.RequireFromString("7500.00")))
	})

	t.Run("missing data payload yields empty set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":"success","data":null}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		positions, err := client.GetPositions(context.Background(), "tok-1")

		require.NoError(t, err)
		assert.Empty(t, positions.Net)
	})
}

func TestGetOrders(t *testing.T) {
	t.Run("parses records", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders", r.URL.Path)
			fmt.Fprint(w, `{"data":[{"order_id":"240901000001","tradingsymbol":"INFY","exchange":"NSE","transaction_type":"BUY","order_type":"LIMIT","product":"CNC","quantity":10,"price":"1450.00","status":"COMPLETE","order_timestamp":"2024-09-01 10:15:30"}]}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		orders, err := client.GetOrders(context.Background(), "tok-1")

		require.NoError(t, err)
		require.Len(t, orders, 1)
		o := orders[0]
		assert.Equal(t, "240901000001", o.OrderID)
		assert.Equal(t, "2024-09-01 10:15:30", o.OrderTimestamp)
		assert.True(t, o.Price.Equal(decimal.RequireFromString("1450.00")))
	})

	t.Run("malformed element is a parse error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":[{"order_id":"240901000001","quantity":"ten"}]}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		orders, err := client.GetOrders(context.Background(), "tok-1")

		require.Error(t, err)
		assert.Equal(t, utils.ParseErrorKind, utils.KindOf(err))
		assert.Nil(t, orders)
	})
}
