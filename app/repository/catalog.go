package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
)

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (name, created_at, updated_at)
		VALUES (?, ?, ?)
	`
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query, category.Name, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	category.ID = uint64(id)
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (*entity.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories WHERE id = ?
	`
	category := &entity.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) List(ctx context.Context, q ListQuery) ([]*entity.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE name LIKE ?
		ORDER BY name
		LIMIT ? OFFSET ?
	`
	limit, offset := q.limitOffset()
	rows, err := r.db.QueryContext(ctx, query, "%"+q.Keywords+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		category := &entity.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := `UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`
	category.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, category.Name, category.UpdatedAt, category.ID)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM categories WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

type SubCategoryRepository struct {
	db DBTX
}

func NewSubCategoryRepository(db DBTX) *SubCategoryRepository {
	return &SubCategoryRepository{db: db}
}

func (r *SubCategoryRepository) Create(ctx context.Context, subCategory *entity.SubCategory) error {
	query := `
		INSERT INTO sub_categories (category_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	now := time.Now()
	subCategory.CreatedAt = now
	subCategory.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query,
		subCategory.CategoryID,
		subCategory.Name,
		subCategory.CreatedAt,
		subCategory.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	subCategory.ID = uint64(id)
	return nil
}

func (r *SubCategoryRepository) FindByID(ctx context.Context, id uint64) (*entity.SubCategory, error) {
	query := `
		SELECT id, category_id, name, created_at, updated_at
		FROM sub_categories WHERE id = ?
	`
	subCategory := &entity.SubCategory{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&subCategory.ID,
		&subCategory.CategoryID,
		&subCategory.Name,
		&subCategory.CreatedAt,
		&subCategory.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return subCategory, nil
}

func (r *SubCategoryRepository) ListByCategoryID(ctx context.Context, categoryID uint64, q ListQuery) ([]*entity.SubCategory, error) {
	query := `
		SELECT id, category_id, name, created_at, updated_at
		FROM sub_categories
		WHERE category_id = ? AND name LIKE ?
		ORDER BY name
		LIMIT ? OFFSET ?
	`
	limit, offset := q.limitOffset()
	rows, err := r.db.QueryContext(ctx, query, categoryID, "%"+q.Keywords+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subCategories []*entity.SubCategory
	for rows.Next() {
		subCategory := &entity.SubCategory{}
		if err := rows.Scan(
			&subCategory.ID,
			&subCategory.CategoryID,
			&subCategory.Name,
			&subCategory.CreatedAt,
			&subCategory.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subCategories = append(subCategories, subCategory)
	}
	return subCategories, rows.Err()
}

func (r *SubCategoryRepository) Update(ctx context.Context, subCategory *entity.SubCategory) error {
	query := `UPDATE sub_categories SET category_id = ?, name = ?, updated_at = ? WHERE id = ?`
	subCategory.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		subCategory.CategoryID,
		subCategory.Name,
		subCategory.UpdatedAt,
		subCategory.ID,
	)
	return err
}

func (r *SubCategoryRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM sub_categories WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productSelectColumns = `id, category_id, sub_category_id, name, price, unit, status, origin,
		       inventory_status, quantity, created_at, updated_at`

func scanProductRow(rows *sql.Rows) (*entity.Product, error) {
	product := &entity.Product{}
	err := rows.Scan(
		&product.ID,
		&product.CategoryID,
		&product.SubCategoryID,
		&product.Name,
		&product.Price,
		&product.Unit,
		&product.Status,
		&product.Origin,
		&product.InventoryStatus,
		&product.Quantity,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (category_id, sub_category_id, name, price, unit, status, origin, inventory_status, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query,
		product.CategoryID,
		product.SubCategoryID,
		product.Name,
		product.Price,
		product.Unit,
		product.Status,
		product.Origin,
		product.InventoryStatus,
		product.Quantity,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	product.ID = uint64(id)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (*entity.Product, error) {
	query := `
		SELECT ` + productSelectColumns + `
		FROM products WHERE id = ?
	`
	product := &entity.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.CategoryID,
		&product.SubCategoryID,
		&product.Name,
		&product.Price,
		&product.Unit,
		&product.Status,
		&product.Origin,
		&product.InventoryStatus,
		&product.Quantity,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) List(ctx context.Context, q ListQuery) ([]*entity.Product, error) {
	order := "created_at DESC"
	switch q.SortBy {
	case SortOldest:
		order = "created_at ASC"
	case SortPriceAsc:
		order = "price ASC"
	case SortPriceDesc:
		order = "price DESC"
	}

	query := `
		SELECT ` + productSelectColumns + `
		FROM products
		WHERE name LIKE ?
		ORDER BY ` + order + `
		LIMIT ? OFFSET ?
	`
	limit, offset := q.limitOffset()
	rows, err := r.db.QueryContext(ctx, query, "%"+q.Keywords+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET
			category_id = ?,
			sub_category_id = ?,
			name = ?,
			price = ?,
			unit = ?,
			status = ?,
			origin = ?,
			inventory_status = ?,
			quantity = ?,
			updated_at = ?
		WHERE id = ?
	`
	product.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		product.CategoryID,
		product.SubCategoryID,
		product.Name,
		product.Price,
		product.Unit,
		product.Status,
		product.Origin,
		product.InventoryStatus,
		product.Quantity,
		product.UpdatedAt,
		product.ID,
	)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
