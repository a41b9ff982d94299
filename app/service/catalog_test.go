package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	insertCategoryQuery   = `(?s)INSERT INTO categories \(name, created_at, updated_at\)\s+VALUES \(\?, \?, \?\)`
	findCategoryByIDQuery = `(?s)SELECT id, name, created_at, updated_at\s+FROM categories WHERE id = \?`
	listCategoriesQuery   = `(?s)SELECT id, name, created_at, updated_at\s+FROM categories\s+WHERE name LIKE \?\s+ORDER BY name\s+LIMIT \? OFFSET \?`
	updateCategoryQuery   = `UPDATE categories SET name = \?, updated_at = \? WHERE id = \?`
	deleteCategoryQuery   = `DELETE FROM categories WHERE id = \?`
	insertSubCategoryQry  = `(?s)INSERT INTO sub_categories \(category_id, name, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?\)`
	insertProductQuery    = `(?s)INSERT INTO products \(category_id, sub_category_id, name, price, unit, status, origin, inventory_status, quantity, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?\)`
	findProductByIDQuery  = `(?s)SELECT id, category_id, sub_category_id, name, price, unit, status, origin,\s+inventory_status, quantity, created_at, updated_at\s+FROM products WHERE id = \?`
)

var (
	categoryColumns = []string{"id", "name", "created_at", "updated_at"}
	productColumns  = []string{
		"id",
		"category_id",
		"sub_category_id",
		"name",
		"price",
		"unit",
		"status",
		"origin",
		"inventory_status",
		"quantity",
		"created_at",
		"updated_at",
	}
)

// listProductsQuery builds the expected list regex for a given ORDER BY
// clause, since sorting is spliced into the statement rather than bound.
func listProductsQuery(order string) string {
	return `(?s)SELECT id, category_id, sub_category_id, name, price, unit, status, origin,\s+inventory_status, quantity, created_at, updated_at\s+FROM products\s+WHERE name LIKE \?\s+ORDER BY ` + order + `\s+LIMIT \? OFFSET \?`
}

func newCatalogFixture(t *testing.T) (*service.CatalogService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	svc := service.NewCatalogService(
		repository.NewCategoryRepository(db),
		repository.NewSubCategoryRepository(db),
		repository.NewProductRepository(db),
	)
	return svc, mock, func() { _ = db.Close() }
}

func TestCatalogService_CreateCategory(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	mock.ExpectExec(insertCategoryQuery).
		WithArgs("Vegetables", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	category, err := svc.CreateCategory(context.Background(), "Vegetables")
	if err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	if category.ID != 5 || category.Name != "Vegetables" {
		t.Fatalf("unexpected category: %+v", category)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_GetCategoryNotFound(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	mock.ExpectQuery(findCategoryByIDQuery).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	if _, err := svc.GetCategory(context.Background(), 9); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_ListCategoriesFiltersByKeywords(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(listCategoriesQuery).
		WithArgs("%Veg%", 10, 0).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(1, "Vegetables", now, now))

	categories, err := svc.ListCategories(context.Background(), repository.ListQuery{Keywords: "Veg"})
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Vegetables" {
		t.Fatalf("unexpected categories: %+v", categories)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_UpdateCategory(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findCategoryByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(1, "Vegetables", now, now))
	mock.ExpectExec(updateCategoryQuery).
		WithArgs("Fresh Vegetables", sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	category, err := svc.UpdateCategory(context.Background(), 1, "Fresh Vegetables")
	if err != nil {
		t.Fatalf("UpdateCategory returned error: %v", err)
	}
	if category.Name != "Fresh Vegetables" {
		t.Fatalf("unexpected category: %+v", category)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_DeleteCategoryNotFound(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	mock.ExpectQuery(findCategoryByIDQuery).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	if err := svc.DeleteCategory(context.Background(), 3); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_CreateSubCategoryRequiresCategory(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	mock.ExpectQuery(findCategoryByIDQuery).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	if _, err := svc.CreateSubCategory(context.Background(), 2, "Leafy Greens"); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_CreateSubCategory(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findCategoryByIDQuery).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(2, "Vegetables", now, now))
	mock.ExpectExec(insertSubCategoryQry).
		WithArgs(uint64(2), "Leafy Greens", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	subCategory, err := svc.CreateSubCategory(context.Background(), 2, "Leafy Greens")
	if err != nil {
		t.Fatalf("CreateSubCategory returned error: %v", err)
	}
	if subCategory.ID != 7 || subCategory.CategoryID != 2 {
		t.Fatalf("unexpected subcategory: %+v", subCategory)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_CreateProductRequiresCategory(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	mock.ExpectQuery(findCategoryByIDQuery).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	product := &entity.Product{CategoryID: 4, Name: "Spinach", Price: 25000}
	if _, err := svc.CreateProduct(context.Background(), product); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findCategoryByIDQuery).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(4, "Vegetables", now, now))
	mock.ExpectExec(insertProductQuery).
		WithArgs(uint64(4), nil, "Spinach", int64(25000), 1, 1, 1, 1, int64(100), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	product := &entity.Product{
		CategoryID:      4,
		Name:            "Spinach",
		Price:           25000,
		Unit:            1,
		Status:          1,
		Origin:          1,
		InventoryStatus: 1,
		Quantity:        100,
	}
	product, err := svc.CreateProduct(context.Background(), product)
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if product.ID != 11 {
		t.Fatalf("unexpected product id: %d", product.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_GetProductNotFound(t *testing.T) {
	svc, mock, cleanup := newCatalogFixture(t)
	defer cleanup()

	mock.ExpectQuery(findProductByIDQuery).
		WithArgs(uint64(44)).
		WillReturnRows(sqlmock.NewRows(productColumns))

	if _, err := svc.GetProduct(context.Background(), 44); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogService_ListProductsSortOrders(t *testing.T) {
	cases := []struct {
		name   string
		sortBy int
		order  string
	}{
		{"defaults to newest", 0, "created_at DESC"},
		{"oldest", repository.SortOldest, "created_at ASC"},
		{"price ascending", repository.SortPriceAsc, "price ASC"},
		{"price descending", repository.SortPriceDesc, "price DESC"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mock, cleanup := newCatalogFixture(t)
			defer cleanup()

			now := time.Now()
			mock.ExpectQuery(listProductsQuery(tc.order)).
				WithArgs("%%", 10, 0).
				WillReturnRows(sqlmock.NewRows(productColumns).
					AddRow(1, 4, nil, "Spinach", 25000, 1, 1, 1, 1, 100, now, now))

			products, err := svc.ListProducts(context.Background(), repository.ListQuery{SortBy: tc.sortBy})
			if err != nil {
				t.Fatalf("ListProducts returned error: %v", err)
			}
			if len(products) != 1 || products[0].Name != "Spinach" {
				t.Fatalf("unexpected products: %+v", products)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}
