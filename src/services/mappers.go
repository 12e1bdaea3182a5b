package services

import (
	"fmt"
	"time"

	"kitesync/src/clients/kite"
	"kitesync/src/models"
)

// orderTimestampLayout matches the broker's space-separated date-time form.
const orderTimestampLayout = "2006-01-02 15:04:05"

func mapHolding(rec kite.HoldingSchema, userID int64, syncedAt time.Time) (models.Holding, error) {
	return models.Holding{
		UserID:        userID,
		TradingSymbol: rec.TradingSymbol,
		Exchange:      rec.Exchange,
		ISIN:          rec.ISIN,
		Quantity:      rec.Quantity,
		AveragePrice:  rec.AveragePrice,
		LastPrice:     rec.LastPrice,
		PnL:           rec.PnL,
		Product:       rec.Product,
		SyncedAt:      syncedAt,
	}, nil
}

func mapPosition(rec kite.PositionSchema, userID int64, syncedAt time.Time) (models.Position, error) {
	return models.Position{
		UserID:        userID,
		TradingSymbol: rec.TradingSymbol,
		Exchange:      rec.Exchange,
		Product:       rec.Product,
		Quantity:      rec.Quantity,
		BuyQuantity:   rec.BuyQuantity,
		SellQuantity:  rec.SellQuantity,
		AveragePrice:  rec.AveragePrice,
		LastPrice:     rec.LastPrice,
		PnL:           rec.PnL,
		UnrealisedPnL: rec.UnrealisedPnL,
		RealisedPnL:   rec.RealisedPnL,
		SyncedAt:      syncedAt,
	}, nil
}

func mapOrder(rec kite.OrderSchema, userID int64, syncedAt time.Time) (models.Order, error) {
	order := models.Order{
		UserID:          userID,
		OrderID:         rec.OrderID,
		TradingSymbol:   rec.TradingSymbol,
		Exchange:        rec.Exchange,
		TransactionType: rec.TransactionType,
		OrderType:       rec.OrderType,
		Product:         rec.Product,
		Quantity:        rec.Quantity,
		Price:           rec.Price,
		Status:          rec.Status,
		SyncedAt:        syncedAt,
	}

	if rec.OrderTimestamp != "" {
		ts, err := time.Parse(orderTimestampLayout, rec.OrderTimestamp)
		if err != nil {
			return models.Order{}, fmt.Errorf("invalid order_timestamp %q: %w", rec.OrderTimestamp, err)
		}
		order.OrderTimestamp = &ts
	}
	return order, nil
}
