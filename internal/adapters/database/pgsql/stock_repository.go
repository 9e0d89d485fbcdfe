package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	"github.com/SscSPs/restaurant_supply_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStockRepository struct {
	BaseRepository
}

func newPgxStockRepository(pool *pgxpool.Pool) *PgxStockRepository {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

const stockTransactionColumns = `transaction_id, product_id, product_name, organization_id, location, movement_type,
	quantity, previous_stock, new_stock, reason, notes, user_id, user_name, created_at`

func toDomainStockTransaction(m models.StockTransaction) domain.StockTransaction {
	return domain.StockTransaction{
		TransactionID:  m.TransactionID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		OrganizationID: m.OrganizationID,
		Location:       m.Location,
		Type:           domain.MovementType(m.MovementType),
		Quantity:       m.Quantity,
		PreviousStock:  m.PreviousStock,
		NewStock:       m.NewStock,
		Reason:         m.Reason,
		Notes:          m.Notes,
		UserID:         m.UserID,
		UserName:       m.UserName,
		CreatedAt:      m.CreatedAt,
	}
}

func scanStockTransaction(row pgx.Row) (models.StockTransaction, error) {
	var m models.StockTransaction
	err := row.Scan(&m.TransactionID, &m.ProductID, &m.ProductName, &m.OrganizationID, &m.Location, &m.MovementType,
		&m.Quantity, &m.PreviousStock, &m.NewStock, &m.Reason, &m.Notes, &m.UserID, &m.UserName, &m.CreatedAt)
	return m, err
}

// insertStockTransaction appends one ledger row inside the caller's transaction.
func insertStockTransaction(ctx context.Context, tx pgx.Tx, txn domain.StockTransaction) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO stock_transactions (`+stockTransactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		txn.TransactionID, txn.ProductID, txn.ProductName, txn.OrganizationID, txn.Location, string(txn.Type),
		txn.Quantity, txn.PreviousStock, txn.NewStock, txn.Reason, txn.Notes, txn.UserID, txn.UserName, txn.CreatedAt,
	)
	return mapError(err, "insert stock transaction "+txn.TransactionID)
}

func (r *PgxStockRepository) ListTransactionsByProduct(ctx context.Context, orgID, productID string) ([]domain.StockTransaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+stockTransactionColumns+` FROM stock_transactions
		WHERE organization_id = $1 AND product_id = $2
		ORDER BY created_at DESC, transaction_id`, orgID, productID)
	if err != nil {
		return nil, mapError(err, "list stock transactions")
	}
	defer rows.Close()

	txns := []domain.StockTransaction{}
	for rows.Next() {
		m, err := scanStockTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock transaction row: %w", err)
		}
		txns = append(txns, toDomainStockTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock transaction rows: %w", err)
	}
	return txns, nil
}

// RecordMovement serializes movements per product through the row lock, so concurrent
// movements each see the level left by the previous one and the ledger stays replayable.
func (r *PgxStockRepository) RecordMovement(ctx context.Context, orgID, productID string, mutate portsrepo.StockMutation) (*domain.Product, *domain.StockTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanProduct(tx.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE organization_id = $1 AND product_id = $2 FOR UPDATE`,
		orgID, productID))
	if err != nil {
		return nil, nil, mapError(err, "lock product "+productID)
	}
	product := toDomainProduct(m)

	txn, err := mutate(&product)
	if err != nil {
		return nil, nil, err
	}

	if err := insertStockTransaction(ctx, tx, txn); err != nil {
		return nil, nil, err
	}

	updated := toModelProduct(product)
	if _, err := tx.Exec(ctx, `
		UPDATE products
		SET stock_level = $3, last_restock_date = $4, last_updated_at = $5, last_updated_by = $6, version = $7
		WHERE organization_id = $1 AND product_id = $2`,
		orgID, productID, updated.StockLevel, updated.LastRestockDate, updated.LastUpdatedAt, updated.LastUpdatedBy, updated.Version,
	); err != nil {
		return nil, nil, mapError(err, "update stock level of "+productID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &product, &txn, nil
}
