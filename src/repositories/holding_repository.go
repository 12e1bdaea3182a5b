package repositories

import (
	"context"

	"kitesync/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]models.Holding, error)
	UpsertAll(ctx context.Context, userID int64, holdings []models.Holding) (int, error)
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) GetByUserID(ctx context.Context, userID int64) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, trading_symbol, exchange, isin, quantity,
			average_price, last_price, pnl, product, synced_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY trading_symbol ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.TradingSymbol, &h.Exchange, &h.ISIN, &h.Quantity,
			&h.AveragePrice, &h.LastPrice, &h.PnL, &h.Product, &h.SyncedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// UpsertAll writes the fetched holdings in one transaction, keyed by
// (user_id, trading_symbol). Existing rows keep their id; rows absent from
// the slice are left untouched.
func (r *holdingRepo) UpsertAll(ctx context.Context, userID int64, holdings []models.Holding) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO holdings (user_id, trading_symbol, exchange, isin, quantity,
			average_price, last_price, pnl, product, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, trading_symbol) DO UPDATE SET
			exchange = EXCLUDED.exchange,
			isin = EXCLUDED.isin,
			quantity = EXCLUDED.quantity,
			average_price = EXCLUDED.average_price,
			last_price = EXCLUDED.last_price,
			pnl = EXCLUDED.pnl,
			product = EXCLUDED.product,
			synced_at = EXCLUDED.synced_at`

	count := 0
	for _, h := range holdings {
		_, err = tx.Exec(ctx, query,
			userID, h.TradingSymbol, h.Exchange, h.ISIN, h.Quantity,
			h.AveragePrice, h.LastPrice, h.PnL, h.Product, h.SyncedAt)
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
