package kite

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Envelope is the common Kite response wrapper. Data stays raw because its
// shape differs per endpoint (array, object, or absent on empty portfolios).
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// SessionTokenSchema is the data payload of POST /session/token.
type SessionTokenSchema struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	PublicToken string `json:"public_token"`
}

// HoldingSchema mirrors one element of GET /portfolio/holdings. Prices may
// arrive as numbers or numeric strings; decimal handles both and defaults
// missing fields to zero.
type HoldingSchema struct {
	TradingSymbol string          `json:"tradingsymbol"`
	Exchange      string          `json:"exchange"`
	ISIN          string          `json:"isin"`
	Quantity      int             `json:"quantity"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	LastPrice     decimal.Decimal `json:"last_price"`
	PnL           decimal.Decimal `json:"pnl"`
	Product       string          `json:"product"`
}

// PositionsSchema is the data payload of GET /portfolio/positions. Only the
// net view is synced.
type PositionsSchema struct {
	Net []PositionSchema `json:"net"`
	Day []PositionSchema `json:"day"`
}

type PositionSchema struct {
	TradingSymbol string          `json:"tradingsymbol"`
	Exchange      string          `json:"exchange"`
	Product       string          `json:"product"`
	Quantity      int             `json:"quantity"`
	BuyQuantity   int             `json:"buy_quantity"`
	SellQuantity  int             `json:"sell_quantity"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	LastPrice     decimal.Decimal `json:"last_price"`
	PnL           decimal.Decimal `json:"pnl"`
	UnrealisedPnL decimal.Decimal `json:"unrealised"`
	RealisedPnL   decimal.Decimal `json:"realised"`
}

// OrderSchema mirrors one element of GET /orders. OrderTimestamp keeps the
// broker's "2006-01-02 15:04:05" string form until mapping.
type OrderSchema struct {
	OrderID         string          `json:"order_id"`
	TradingSymbol   string          `json:"tradingsymbol"`
	Exchange        string          `json:"exchange"`
	TransactionType string          `json:"transaction_type"`
	OrderType       string          `json:"order_type"`
	Product         string          `json:"product"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
	OrderTimestamp  string          `json:"order_timestamp"`
}
