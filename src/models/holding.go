package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a long-lived portfolio row, unique per (user, trading symbol).
type Holding struct {
	ID            int64           `db:"id" json:"id"`
	UserID        int64           `db:"user_id" json:"userId"`
	TradingSymbol string          `db:"trading_symbol" json:"tradingSymbol"`
	Exchange      string          `db:"exchange" json:"exchange"`
	ISIN          string          `db:"isin" json:"isin"`
	Quantity      int             `db:"quantity" json:"quantity"`
	AveragePrice  decimal.Decimal `db:"average_price" json:"averagePrice"`
	LastPrice     decimal.Decimal `db:"last_price" json:"lastPrice"`
	PnL           decimal.Decimal `db:"pnl" json:"pnl"`
	Product       string          `db:"product" json:"product"`
	SyncedAt      time.Time       `db:"synced_at" json:"syncedAt"`
}
