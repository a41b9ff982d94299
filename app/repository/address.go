package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
)

type UserAddressRepository struct {
	db DBTX
}

func NewUserAddressRepository(db DBTX) *UserAddressRepository {
	return &UserAddressRepository{db: db}
}

func (r *UserAddressRepository) Create(ctx context.Context, address *entity.UserAddress) error {
	query := `
		INSERT INTO user_addresses (user_id, full_address, city_code, district_code, ward_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	address.CreatedAt = now
	address.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query,
		address.UserID,
		address.FullAddress,
		address.CityCode,
		address.DistrictCode,
		address.WardCode,
		address.CreatedAt,
		address.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	address.ID = uint64(id)
	return nil
}

func (r *UserAddressRepository) FindByID(ctx context.Context, id uint64) (*entity.UserAddress, error) {
	query := `
		SELECT id, user_id, full_address, city_code, district_code, ward_code, created_at, updated_at
		FROM user_addresses WHERE id = ?
	`
	address := &entity.UserAddress{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&address.ID,
		&address.UserID,
		&address.FullAddress,
		&address.CityCode,
		&address.DistrictCode,
		&address.WardCode,
		&address.CreatedAt,
		&address.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (r *UserAddressRepository) ListByUserID(ctx context.Context, userID uint64) ([]*entity.UserAddress, error) {
	query := `
		SELECT id, user_id, full_address, city_code, district_code, ward_code, created_at, updated_at
		FROM user_addresses WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*entity.UserAddress
	for rows.Next() {
		address := &entity.UserAddress{}
		if err := rows.Scan(
			&address.ID,
			&address.UserID,
			&address.FullAddress,
			&address.CityCode,
			&address.DistrictCode,
			&address.WardCode,
			&address.CreatedAt,
			&address.UpdatedAt,
		); err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, rows.Err()
}

func (r *UserAddressRepository) Update(ctx context.Context, address *entity.UserAddress) error {
	query := `
		UPDATE user_addresses SET
			full_address = ?,
			city_code = ?,
			district_code = ?,
			ward_code = ?,
			updated_at = ?
		WHERE id = ?
	`
	address.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		address.FullAddress,
		address.CityCode,
		address.DistrictCode,
		address.WardCode,
		address.UpdatedAt,
		address.ID,
	)
	return err
}

func (r *UserAddressRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM user_addresses WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
