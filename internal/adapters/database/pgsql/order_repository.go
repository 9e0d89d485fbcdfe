package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	"github.com/SscSPs/restaurant_supply_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const weekOfLayout = "2006-01-02"

type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, organization_id, restaurant_id, restaurant_name, items, is_urgent, status, week_of, total_items,
	created_at, created_by, last_updated_at, last_updated_by, version`

func toModelOrder(d domain.Order) (models.Order, error) {
	weekOf, err := time.Parse(weekOfLayout, d.WeekOf)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: invalid week_of %q", apperrors.ErrValidation, d.WeekOf)
	}
	items := make([]models.OrderLineItem, len(d.Items))
	for i, li := range d.Items {
		items[i] = models.OrderLineItem{
			ProductID:            li.ProductID,
			ProductName:          li.ProductName,
			Unit:                 li.Unit,
			Category:             li.Category,
			SelectedProviderID:   li.SelectedProviderID,
			SelectedProviderName: li.SelectedProviderName,
			Quantity:             li.Quantity,
			Status:               string(li.Status),
			Substitution:         li.Substitution,
			UpdatedAt:            li.UpdatedAt,
			UpdatedBy:            li.UpdatedBy,
		}
	}
	return models.Order{
		OrderID:        d.OrderID,
		OrganizationID: d.OrganizationID,
		RestaurantID:   d.RestaurantID,
		RestaurantName: d.RestaurantName,
		Items:          items,
		IsUrgent:       d.IsUrgent,
		Status:         string(d.Status),
		WeekOf:         weekOf,
		TotalItems:     d.TotalItems,
		AuditFields:    toModelAudit(d.AuditFields),
	}, nil
}

func toDomainOrder(m models.Order) domain.Order {
	items := make([]domain.OrderLineItem, len(m.Items))
	for i, li := range m.Items {
		items[i] = domain.OrderLineItem{
			ProductID:            li.ProductID,
			ProductName:          li.ProductName,
			Unit:                 li.Unit,
			Category:             li.Category,
			SelectedProviderID:   li.SelectedProviderID,
			SelectedProviderName: li.SelectedProviderName,
			Quantity:             li.Quantity,
			Status:               domain.LineItemStatus(li.Status),
			Substitution:         li.Substitution,
			UpdatedAt:            li.UpdatedAt,
			UpdatedBy:            li.UpdatedBy,
		}
	}
	return domain.Order{
		OrderID:        m.OrderID,
		OrganizationID: m.OrganizationID,
		RestaurantID:   m.RestaurantID,
		RestaurantName: m.RestaurantName,
		Items:          items,
		IsUrgent:       m.IsUrgent,
		Status:         domain.OrderStatus(m.Status),
		WeekOf:         m.WeekOf.Format(weekOfLayout),
		TotalItems:     m.TotalItems,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(&m.OrderID, &m.OrganizationID, &m.RestaurantID, &m.RestaurantName, &m.Items, &m.IsUrgent,
		&m.Status, &m.WeekOf, &m.TotalItems,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version)
	return m, err
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orgID, orderID string) (*domain.Order, error) {
	m, err := scanOrder(r.Pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE organization_id = $1 AND order_id = $2`, orgID, orderID))
	if err != nil {
		return nil, mapError(err, "find order "+orderID)
	}
	o := toDomainOrder(m)
	return &o, nil
}

func (r *PgxOrderRepository) ListOrders(ctx context.Context, orgID string, filter portsrepo.OrderFilter) ([]domain.Order, error) {
	conds := []string{"organization_id = $1"}
	args := []any{orgID}
	add := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, column+" = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		add("status", string(*filter.Status))
	}
	if filter.RestaurantID != "" {
		add("restaurant_id", filter.RestaurantID)
	}
	if filter.IsUrgent != nil {
		add("is_urgent", *filter.IsUrgent)
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC, order_id`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list orders")
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, toDomainOrder(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, nil
}

func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	m, err := toModelOrder(order)
	if err != nil {
		return err
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.OrderID, m.OrganizationID, m.RestaurantID, m.RestaurantName, m.Items, m.IsUrgent, m.Status, m.WeekOf, m.TotalItems,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	return mapError(err, "save order "+order.OrderID)
}

func (r *PgxOrderRepository) UpdateOrderIfVersion(ctx context.Context, order domain.Order, expectedVersion int) error {
	m, err := toModelOrder(order)
	if err != nil {
		return err
	}
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE orders
		SET items = $4, status = $5, last_updated_at = $6, last_updated_by = $7, version = $3 + 1
		WHERE organization_id = $1 AND order_id = $2 AND version = $3`,
		m.OrganizationID, m.OrderID, expectedVersion, m.Items, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update order "+order.OrderID)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE organization_id = $1 AND order_id = $2)`,
		m.OrganizationID, m.OrderID).Scan(&exists); err != nil {
		return mapError(err, "check order "+order.OrderID)
	}
	if !exists {
		return fmt.Errorf("order %s: %w", order.OrderID, apperrors.ErrNotFound)
	}
	return fmt.Errorf("order %s at version %d: %w", order.OrderID, expectedVersion, portsrepo.ErrStaleVersion)
}
