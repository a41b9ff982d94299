package entity

import (
	"database/sql"
	"time"
)

const (
	RoleCustomer   = "CUSTOMER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	ID                  uint64
	Email               string
	PasswordHash        string
	Role                string
	FullName            sql.NullString
	Phone               sql.NullString
	Gender              sql.NullInt64
	Birthday            sql.NullTime
	ResetTokenHash      sql.NullString
	ResetTokenExpiresAt sql.NullTime
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RefreshSession holds the single refresh token persisted per user.
// A new sign-in overwrites the existing row (upsert keyed by user_id).
type RefreshSession struct {
	ID        uint64
	UserID    uint64
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserPermission struct {
	ID        uint64
	UserID    uint64
	Create    bool
	Update    bool
	Remove    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserAddress struct {
	ID           uint64
	UserID       uint64
	FullAddress  string
	CityCode     int64
	DistrictCode int64
	WardCode     int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
