package entity

import (
	"database/sql"
	"time"
)

// Product enums follow the numeric codes used by the storefront clients.
const (
	ProductStatusDraft  = 1
	ProductStatusActive = 2

	ProductUnitKg    = 1
	ProductUnitPack  = 2
	ProductUnitPiece = 3
	ProductUnitBox   = 4

	InventoryStatusInStock    = 1
	InventoryStatusOutOfStock = 2

	ProductOriginVietnam = 1
	ProductOriginImport  = 2
)

type Category struct {
	ID        uint64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SubCategory struct {
	ID         uint64
	CategoryID uint64
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Product struct {
	ID              uint64
	CategoryID      uint64
	SubCategoryID   sql.NullInt64
	Name            string
	Price           int64
	Unit            int
	Status          int
	Origin          int
	InventoryStatus int
	Quantity        int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
