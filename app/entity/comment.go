package entity

import (
	"database/sql"
	"time"
)

type Comment struct {
	ID         uint64
	ProductID  uint64
	CustomerID uint64
	ParentID   sql.NullInt64
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
