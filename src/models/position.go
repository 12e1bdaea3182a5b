package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is an intraday snapshot row. Positions carry no stable external
// key, so the whole set for a user is replaced on every sync.
type Position struct {
	ID            int64           `db:"id" json:"id"`
	UserID        int64           `db:"user_id" json:"userId"`
	TradingSymbol string          `db:"trading_symbol" json:"tradingSymbol"`
	Exchange      string          `db:"exchange" json:"exchange"`
	Product       string          `db:"product" json:"product"`
	Quantity      int             `db:"quantity" json:"quantity"`
	BuyQuantity   int             `db:"buy_quantity" json:"buyQuantity"`
	SellQuantity  int             `db:"sell_quantity" json:"sellQuantity"`
	AveragePrice  decimal.Decimal `db:"average_price" json:"averagePrice"`
	LastPrice     decimal.Decimal `db:"last_price" json:"lastPrice"`
	PnL           decimal.Decimal `db:"pnl" json:"pnl"`
	UnrealisedPnL decimal.Decimal `db:"unrealised_pnl" json:"unrealisedPnl"`
	RealisedPnL   decimal.Decimal `db:"realised_pnl" json:"realisedPnl"`
	SyncedAt      time.Time       `db:"synced_at" json:"syncedAt"`
}
