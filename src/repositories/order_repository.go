package repositories

import (
	"context"

	"kitesync/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]models.Order, error)
	UpsertAll(ctx context.Context, userID int64, orders []models.Order) (int, error)
}

type orderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) GetByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, order_id, trading_symbol, exchange, transaction_type,
			order_type, product, quantity, price, status, order_timestamp, synced_at
		FROM orders
		WHERE user_id = $1
		ORDER BY order_timestamp DESC NULLS LAST
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderID, &o.TradingSymbol, &o.Exchange, &o.TransactionType,
			&o.OrderType, &o.Product, &o.Quantity, &o.Price, &o.Status, &o.OrderTimestamp, &o.SyncedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpsertAll writes the fetched orders in one transaction, keyed by the
// broker-assigned order_id. Existing rows keep their id.
func (r *orderRepo) UpsertAll(ctx context.Context, userID int64, orders []models.Order) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (user_id, order_id, trading_symbol, exchange, transaction_type,
			order_type, product, quantity, price, status, order_timestamp, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (order_id) DO UPDATE SET
			trading_symbol = EXCLUDED.trading_symbol,
			exchange = EXCLUDED.exchange,
			transaction_type = EXCLUDED.transaction_type,
			order_type = EXCLUDED.order_type,
			product = EXCLUDED.product,
			quantity = EXCLUDED.quantity,
			price = EXCLUDED.price,
			status = EXCLUDED.status,
			order_timestamp = EXCLUDED.order_timestamp,
			synced_at = EXCLUDED.synced_at`

	count := 0
	for _, o := range orders {
		_, err = tx.Exec(ctx, query,
			userID, o.OrderID, o.TradingSymbol, o.Exchange, o.TransactionType,
			o.OrderType, o.Product, o.Quantity, o.Price, o.Status, o.OrderTimestamp, o.SyncedAt)
		if err != nil {
			return 0, err
		}
		count++
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return count, nil
}
