package repository

import (
	"context"
	"database/sql"

	"github.com/freshmarket/commerce-api/app/entity"
)

// Geographic reference data is read-mostly: rows are loaded by the seed
// command and only ever updated by back-office corrections.

type CityRepository struct {
	db DBTX
}

func NewCityRepository(db DBTX) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) Create(ctx context.Context, city *entity.City) error {
	query := `
		INSERT INTO cities (name, code, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())
	`
	result, err := r.db.ExecContext(ctx, query, city.Name, city.Code)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	city.ID = uint64(id)
	return nil
}

func (r *CityRepository) FindByID(ctx context.Context, id uint64) (*entity.City, error) {
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM cities WHERE id = ?
	`
	city := &entity.City{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&city.ID,
		&city.Name,
		&city.Code,
		&city.CreatedAt,
		&city.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return city, nil
}

func (r *CityRepository) List(ctx context.Context, keywords string) ([]*entity.City, error) {
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM cities
		WHERE name LIKE ?
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, "%"+keywords+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []*entity.City
	for rows.Next() {
		city := &entity.City{}
		if err := rows.Scan(&city.ID, &city.Name, &city.Code, &city.CreatedAt, &city.UpdatedAt); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

func (r *CityRepository) Update(ctx context.Context, city *entity.City) error {
	query := `UPDATE cities SET name = ?, code = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, city.Name, city.Code, city.ID)
	return err
}

type DistrictRepository struct {
	db DBTX
}

func NewDistrictRepository(db DBTX) *DistrictRepository {
	return &DistrictRepository{db: db}
}

func (r *DistrictRepository) Create(ctx context.Context, district *entity.District) error {
	query := `
		INSERT INTO districts (name, code, city_code, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
	`
	result, err := r.db.ExecContext(ctx, query, district.Name, district.Code, district.CityCode)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	district.ID = uint64(id)
	return nil
}

func (r *DistrictRepository) FindByID(ctx context.Context, id uint64) (*entity.District, error) {
	query := `
		SELECT id, name, code, city_code, created_at, updated_at
		FROM districts WHERE id = ?
	`
	district := &entity.District{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&district.ID,
		&district.Name,
		&district.Code,
		&district.CityCode,
		&district.CreatedAt,
		&district.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return district, nil
}

// List filters by owning city when cityCode is non-zero.
func (r *DistrictRepository) List(ctx context.Context, cityCode int64, keywords string) ([]*entity.District, error) {
	query := `
		SELECT id, name, code, city_code, created_at, updated_at
		FROM districts
		WHERE (? = 0 OR city_code = ?) AND name LIKE ?
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, cityCode, cityCode, "%"+keywords+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var districts []*entity.District
	for rows.Next() {
		district := &entity.District{}
		if err := rows.Scan(
			&district.ID,
			&district.Name,
			&district.Code,
			&district.CityCode,
			&district.CreatedAt,
			&district.UpdatedAt,
		); err != nil {
			return nil, err
		}
		districts = append(districts, district)
	}
	return districts, rows.Err()
}

func (r *DistrictRepository) Update(ctx context.Context, district *entity.District) error {
	query := `UPDATE districts SET name = ?, code = ?, city_code = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, district.Name, district.Code, district.CityCode, district.ID)
	return err
}

type WardRepository struct {
	db DBTX
}

func NewWardRepository(db DBTX) *WardRepository {
	return &WardRepository{db: db}
}

func (r *WardRepository) Create(ctx context.Context, ward *entity.Ward) error {
	query := `
		INSERT INTO wards (name, code, district_code, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
	`
	result, err := r.db.ExecContext(ctx, query, ward.Name, ward.Code, ward.DistrictCode)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	ward.ID = uint64(id)
	return nil
}

func (r *WardRepository) FindByID(ctx context.Context, id uint64) (*entity.Ward, error) {
	query := `
		SELECT id, name, code, district_code, created_at, updated_at
		FROM wards WHERE id = ?
	`
	ward := &entity.Ward{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ward.ID,
		&ward.Name,
		&ward.Code,
		&ward.DistrictCode,
		&ward.CreatedAt,
		&ward.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ward, nil
}

// List filters by owning district when districtCode is non-zero.
func (r *WardRepository) List(ctx context.Context, districtCode int64, keywords string) ([]*entity.Ward, error) {
	query := `
		SELECT id, name, code, district_code, created_at, updated_at
		FROM wards
		WHERE (? = 0 OR district_code = ?) AND name LIKE ?
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, districtCode, districtCode, "%"+keywords+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wards []*entity.Ward
	for rows.Next() {
		ward := &entity.Ward{}
		if err := rows.Scan(
			&ward.ID,
			&ward.Name,
			&ward.Code,
			&ward.DistrictCode,
			&ward.CreatedAt,
			&ward.UpdatedAt,
		); err != nil {
			return nil, err
		}
		wards = append(wards, ward)
	}
	return wards, rows.Err()
}

func (r *WardRepository) Update(ctx context.Context, ward *entity.Ward) error {
	query := `UPDATE wards SET name = ?, code = ?, district_code = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, ward.Name, ward.Code, ward.DistrictCode, ward.ID)
	return err
}
