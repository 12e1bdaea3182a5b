package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is keyed by the broker-assigned order id, which is globally unique.
type Order struct {
	ID              int64           `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"userId"`
	OrderID         string          `db:"order_id" json:"orderId"`
	TradingSymbol   string          `db:"trading_symbol" json:"tradingSymbol"`
	Exchange        string          `db:"exchange" json:"exchange"`
	TransactionType string          `db:"transaction_type" json:"transactionType"`
	OrderType       string          `db:"order_type" json:"orderType"`
	Product         string          `db:"product" json:"product"`
	Quantity        int             `db:"quantity" json:"quantity"`
	Price           decimal.Decimal `db:"price" json:"price"`
	Status          string          `db:"status" json:"status"`
	OrderTimestamp  *time.Time      `db:"order_timestamp" json:"orderTimestamp"`
	SyncedAt        time.Time       `db:"synced_at" json:"syncedAt"`
}
