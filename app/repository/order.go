package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
)

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderSelectColumns = `id, order_number, customer_id, status, payment_method, payment_status,
		       received_type, total_price, note, created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (order_number, customer_id, status, payment_method, payment_status, received_type, total_price, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query,
		order.OrderNumber,
		order.CustomerID,
		order.Status,
		order.PaymentMethod,
		order.PaymentStatus,
		order.ReceivedType,
		order.TotalPrice,
		order.Note,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = uint64(id)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint64) (*entity.Order, error) {
	query := `
		SELECT ` + orderSelectColumns + `
		FROM orders WHERE id = ?
	`
	order := &entity.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerID,
		&order.Status,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.ReceivedType,
		&order.TotalPrice,
		&order.Note,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) ListByCustomerID(ctx context.Context, customerID uint64, q ListQuery) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderSelectColumns + `
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	limit, offset := q.limitOffset()
	rows, err := r.db.QueryContext(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order := &entity.Order{}
		if err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.CustomerID,
			&order.Status,
			&order.PaymentMethod,
			&order.PaymentStatus,
			&order.ReceivedType,
			&order.TotalPrice,
			&order.Note,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders SET
			status = ?,
			payment_method = ?,
			payment_status = ?,
			received_type = ?,
			total_price = ?,
			note = ?,
			updated_at = ?
		WHERE id = ?
	`
	order.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		order.Status,
		order.PaymentMethod,
		order.PaymentStatus,
		order.ReceivedType,
		order.TotalPrice,
		order.Note,
		order.UpdatedAt,
		order.ID,
	)
	return err
}

func (r *OrderRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM orders WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

type OrderItemRepository struct {
	db DBTX
}

func NewOrderItemRepository(db DBTX) *OrderItemRepository {
	return &OrderItemRepository{db: db}
}

func (r *OrderItemRepository) Create(ctx context.Context, item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query,
		item.OrderID,
		item.ProductID,
		item.Quantity,
		item.Price,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	return nil
}

func (r *OrderItemRepository) ListByOrderID(ctx context.Context, orderID uint64) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price, created_at, updated_at
		FROM order_items WHERE order_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		item := &entity.OrderItem{}
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderItemRepository) DeleteByOrderID(ctx context.Context, orderID uint64) error {
	query := `DELETE FROM order_items WHERE order_id = ?`
	_, err := r.db.ExecContext(ctx, query, orderID)
	return err
}

type ShipmentRepository struct {
	db DBTX
}

func NewShipmentRepository(db DBTX) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, shipment *entity.Shipment) error {
	query := `
		INSERT INTO shipments (order_id, full_name, phone, email, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	shipment.CreatedAt = now
	shipment.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query,
		shipment.OrderID,
		shipment.FullName,
		shipment.Phone,
		shipment.Email,
		shipment.Address,
		shipment.CreatedAt,
		shipment.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	shipment.ID = uint64(id)
	return nil
}

func (r *ShipmentRepository) FindByID(ctx context.Context, id uint64) (*entity.Shipment, error) {
	query := `
		SELECT id, order_id, full_name, phone, email, address, created_at, updated_at
		FROM shipments WHERE id = ?
	`
	shipment := &entity.Shipment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&shipment.ID,
		&shipment.OrderID,
		&shipment.FullName,
		&shipment.Phone,
		&shipment.Email,
		&shipment.Address,
		&shipment.CreatedAt,
		&shipment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

func (r *ShipmentRepository) FindByOrderID(ctx context.Context, orderID uint64) (*entity.Shipment, error) {
	query := `
		SELECT id, order_id, full_name, phone, email, address, created_at, updated_at
		FROM shipments WHERE order_id = ?
	`
	shipment := &entity.Shipment{}
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&shipment.ID,
		&shipment.OrderID,
		&shipment.FullName,
		&shipment.Phone,
		&shipment.Email,
		&shipment.Address,
		&shipment.CreatedAt,
		&shipment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

func (r *ShipmentRepository) Update(ctx context.Context, shipment *entity.Shipment) error {
	query := `
		UPDATE shipments SET
			full_name = ?,
			phone = ?,
			email = ?,
			address = ?,
			updated_at = ?
		WHERE id = ?
	`
	shipment.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		shipment.FullName,
		shipment.Phone,
		shipment.Email,
		shipment.Address,
		shipment.UpdatedAt,
		shipment.ID,
	)
	return err
}

func (r *ShipmentRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM shipments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
