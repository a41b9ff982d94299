package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/event"
	"github.com/freshmarket/commerce-api/app/repository"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrShipmentNotFound = errors.New("shipment not found")
	ErrOrderEmpty       = errors.New("order must contain at least one item")
)

type orderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event event.OrderCreatedEvent) error
}

type OrderService struct {
	db        *sql.DB
	orders    *repository.OrderRepository
	items     *repository.OrderItemRepository
	shipments *repository.ShipmentRepository
	publisher orderEventPublisher
}

func NewOrderService(
	db *sql.DB,
	orders *repository.OrderRepository,
	items *repository.OrderItemRepository,
	shipments *repository.ShipmentRepository,
	publisher orderEventPublisher,
) *OrderService {
	return &OrderService{
		db:        db,
		orders:    orders,
		items:     items,
		shipments: shipments,
		publisher: publisher,
	}
}

// CreateOrder persists the order and its items atomically, then announces the
// order on the broker. Publish failures never fail the order.
func (s *OrderService) CreateOrder(ctx context.Context, order *entity.Order, items []*entity.OrderItem) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, ErrOrderEmpty
	}

	order.OrderNumber = uuid.New().String()
	var total int64
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	order.TotalPrice = total

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txOrderRepo := repository.NewOrderRepository(tx)
	if err = txOrderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	txItemRepo := repository.NewOrderItemRepository(tx)
	for _, item := range items {
		item.OrderID = order.ID
		if err = txItemRepo.Create(ctx, item); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	go func() {
		publishCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if publishErr := s.publisher.PublishOrderCreated(publishCtx, event.OrderCreatedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			CustomerID:  order.CustomerID,
			TotalPrice:  order.TotalPrice,
			CreatedAt:   order.CreatedAt,
		}); publishErr != nil {
			logrus.WithError(publishErr).WithField("order_id", order.ID).Warn("order event publish failed")
		}
	}()

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint64) (*entity.Order, []*entity.OrderItem, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, ErrOrderNotFound
	}

	items, err := s.items.ListByOrderID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID uint64, q repository.ListQuery) ([]*entity.Order, error) {
	return s.orders.ListByCustomerID(ctx, customerID, q)
}

func (s *OrderService) UpdateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	existing, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrOrderNotFound
	}

	if err = s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err = repository.NewOrderItemRepository(tx).DeleteByOrderID(ctx, id); err != nil {
		return err
	}
	if err = repository.NewOrderRepository(tx).Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *OrderService) CreateShipment(ctx context.Context, shipment *entity.Shipment) (*entity.Shipment, error) {
	order, err := s.orders.FindByID(ctx, shipment.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err = s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *OrderService) GetShipment(ctx context.Context, id uint64) (*entity.Shipment, error) {
	shipment, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	return shipment, nil
}

func (s *OrderService) UpdateShipment(ctx context.Context, shipment *entity.Shipment) (*entity.Shipment, error) {
	if _, err := s.GetShipment(ctx, shipment.ID); err != nil {
		return nil, err
	}
	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *OrderService) DeleteShipment(ctx context.Context, id uint64) error {
	if _, err := s.GetShipment(ctx, id); err != nil {
		return err
	}
	return s.shipments.Delete(ctx, id)
}

// OrderExists backs the existence-guard middleware on order routes.
func (s *OrderService) OrderExists(ctx context.Context, id uint64) (bool, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return order != nil, nil
}
