package entity

import (
	"database/sql"
	"time"
)

const (
	OrderStatusWaiting   = 1
	OrderStatusDelivered = 2
	OrderStatusCanceled  = 3

	PaymentMethodCOD      = 1
	PaymentMethodTransfer = 2

	PaymentStatusUnpaid = 1
	PaymentStatusPaid   = 2

	ReceivedTypeStore    = 1
	ReceivedTypeDelivery = 2
)

type Order struct {
	ID            uint64
	OrderNumber   string
	CustomerID    uint64
	Status        int
	PaymentMethod int
	PaymentStatus int
	ReceivedType  int
	TotalPrice    int64
	Note          sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItem struct {
	ID        uint64
	OrderID   uint64
	ProductID uint64
	Quantity  int64
	Price     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Shipment struct {
	ID        uint64
	OrderID   uint64
	FullName  string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
