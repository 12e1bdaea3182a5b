package repositories

import (
	"context"

	"kitesync/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PositionRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]models.Position, error)
	ReplaceAll(ctx context.Context, userID int64, positions []models.Position) (int, error)
}

type positionRepo struct {
	db *pgxpool.Pool
}

func NewPositionRepository(db *pgxpool.Pool) PositionRepository {
	return &positionRepo{db: db}
}

func (r *positionRepo) GetByUserID(ctx context.Context, userID int64) ([]models.Position, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, trading_symbol, exchange, product, quantity,
			buy_quantity, sell_quantity, average_price, last_price,
			pnl, unrealised_pnl, realised_pnl, synced_at
		FROM positions
		WHERE user_id = $1
		ORDER BY trading_symbol ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.UserID, &p.TradingSymbol, &p.Exchange, &p.Product, &p.Quantity,
			&p.BuyQuantity, &p.SellQuantity, &p.AveragePrice, &p.LastPrice,
			&p.PnL, &p.UnrealisedPnL, &p.RealisedPnL, &p.SyncedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// ReplaceAll destroys the user's position set and repopulates it from the
// current snapshot, all in one transaction so readers never see a partial
// mix of old and new rows.
func (r *positionRepo) ReplaceAll(ctx context.Context, userID int64, positions []models.Position) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM positions WHERE user_id = $1`, userID); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO positions (user_id, trading_symbol, exchange, product, quantity,
			buy_quantity, sell_quantity, average_price, last_price,
			pnl, unrealised_pnl, realised_pnl, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	count := 0
	for _, p := range positions {
		_, err = tx.Exec(ctx, query,
			userID, p.TradingSymbol, p.Exchange, p.Product, p.Quantity,
			p.BuyQuantity, p.SellQuantity, p.AveragePrice, p.LastPrice,
			p.PnL, p.UnrealisedPnL, p.RealisedPnL, p.SyncedAt)
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
