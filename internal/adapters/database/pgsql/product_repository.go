package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	"github.com/SscSPs/restaurant_supply_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, organization_id, name, unit, category, default_provider_id, default_provider_name,
	is_active, stock_level, min_stock_alert, max_stock, last_restock_date,
	created_at, created_by, last_updated_at, last_updated_by, version`

func toModelProduct(d domain.Product) models.Product {
	m := models.Product{
		ProductID:           d.ProductID,
		OrganizationID:      d.OrganizationID,
		Name:                d.Name,
		Unit:                d.Unit,
		Category:            d.Category,
		DefaultProviderName: d.DefaultProviderName,
		IsActive:            d.IsActive,
		StockLevel:          d.StockLevel,
		MinStockAlert:       d.MinStockAlert,
		MaxStock:            d.MaxStock,
		AuditFields:         toModelAudit(d.AuditFields),
	}
	if id := nullString(d.DefaultProviderID); id != nil {
		m.DefaultProviderID = sql.NullString{String: *id, Valid: true}
	}
	if d.LastRestockDate != nil {
		m.LastRestockDate = sql.NullTime{Time: *d.LastRestockDate, Valid: true}
	}
	return m
}

func toDomainProduct(m models.Product) domain.Product {
	d := domain.Product{
		ProductID:           m.ProductID,
		OrganizationID:      m.OrganizationID,
		Name:                m.Name,
		Unit:                m.Unit,
		Category:            m.Category,
		DefaultProviderName: m.DefaultProviderName,
		IsActive:            m.IsActive,
		StockLevel:          m.StockLevel,
		MinStockAlert:       m.MinStockAlert,
		MaxStock:            m.MaxStock,
		AuditFields:         toDomainAudit(m.AuditFields),
	}
	if m.DefaultProviderID.Valid {
		id := m.DefaultProviderID.String
		d.DefaultProviderID = &id
	}
	if m.LastRestockDate.Valid {
		t := m.LastRestockDate.Time
		d.LastRestockDate = &t
	}
	return d
}

func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
		Version:       d.Version,
	}
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID, &m.OrganizationID, &m.Name, &m.Unit, &m.Category, &m.DefaultProviderID, &m.DefaultProviderName,
		&m.IsActive, &m.StockLevel, &m.MinStockAlert, &m.MaxStock, &m.LastRestockDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()
	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, toDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, orgID, productID string) (*domain.Product, error) {
	m, err := scanProduct(r.Pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE organization_id = $1 AND product_id = $2`, orgID, productID))
	if err != nil {
		return nil, mapError(err, "find product "+productID)
	}
	p := toDomainProduct(m)
	return &p, nil
}

func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, orgID string, productIDs []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return found, nil
	}
	rows, err := r.Pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE organization_id = $1 AND product_id = ANY($2)`, orgID, productIDs)
	if err != nil {
		return nil, mapError(err, "find products by ids")
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		found[p.ProductID] = p
	}
	return found, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, orgID string, active *bool) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE organization_id = $1`
	args := []any{orgID}
	if active != nil {
		query += ` AND is_active = $2`
		args = append(args, *active)
	}
	query += ` ORDER BY LOWER(name), product_id`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list products")
	}
	return collectProducts(rows)
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product, opening *domain.StockTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelProduct(product)
	if _, err := tx.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.ProductID, m.OrganizationID, m.Name, m.Unit, m.Category, m.DefaultProviderID, m.DefaultProviderName,
		m.IsActive, m.StockLevel, m.MinStockAlert, m.MaxStock, m.LastRestockDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	); err != nil {
		return mapError(err, "save product "+product.ProductID)
	}
	if opening != nil {
		if err := insertStockTransaction(ctx, tx, *opening); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// UpdateProduct writes catalog fields only; stock_level and last_restock_date belong to the ledger.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE products
		SET name = $3, unit = $4, category = $5, default_provider_id = $6, default_provider_name = $7,
			min_stock_alert = $8, max_stock = $9, last_updated_at = $10, last_updated_by = $11, version = version + 1
		WHERE organization_id = $1 AND product_id = $2`,
		m.OrganizationID, m.ProductID, m.Name, m.Unit, m.Category, m.DefaultProviderID, m.DefaultProviderName,
		m.MinStockAlert, m.MaxStock, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update product "+product.ProductID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ProductID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProductRepository) SetProductActive(ctx context.Context, orgID, productID string, active bool, userID string, at time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE products SET is_active = $3, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE organization_id = $1 AND product_id = $2`,
		orgID, productID, active, at, userID)
	if err != nil {
		return mapError(err, "toggle product "+productID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteProduct removes the catalog row. Ledger rows and order line items keep their denormalized name.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, orgID, productID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE organization_id = $1 AND product_id = $2`, orgID, productID)
	if err != nil {
		return mapError(err, "delete product "+productID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return nil
}
