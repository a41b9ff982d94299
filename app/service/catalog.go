package service

import (
	"context"
	"errors"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("subcategory not found")
	ErrProductNotFound     = errors.New("product not found")
)

// CatalogService exposes category, subcategory and product management for
// both storefront and back-office callers.
type CatalogService struct {
	categories    *repository.CategoryRepository
	subCategories *repository.SubCategoryRepository
	products      *repository.ProductRepository
}

func NewCatalogService(
	categories *repository.CategoryRepository,
	subCategories *repository.SubCategoryRepository,
	products *repository.ProductRepository,
) *CatalogService {
	return &CatalogService{
		categories:    categories,
		subCategories: subCategories,
		products:      products,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context, q repository.ListQuery) ([]*entity.Category, error) {
	return s.categories.List(ctx, q)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint64) (*entity.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	category := &entity.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint64, name string) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

func (s *CatalogService) ListSubCategories(ctx context.Context, categoryID uint64, q repository.ListQuery) ([]*entity.SubCategory, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.subCategories.ListByCategoryID(ctx, categoryID, q)
}

func (s *CatalogService) GetSubCategory(ctx context.Context, id uint64) (*entity.SubCategory, error) {
	subCategory, err := s.subCategories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subCategory == nil {
		return nil, ErrSubCategoryNotFound
	}
	return subCategory, nil
}

func (s *CatalogService) CreateSubCategory(ctx context.Context, categoryID uint64, name string) (*entity.SubCategory, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	subCategory := &entity.SubCategory{CategoryID: categoryID, Name: name}
	if err := s.subCategories.Create(ctx, subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

func (s *CatalogService) UpdateSubCategory(ctx context.Context, id, categoryID uint64, name string) (*entity.SubCategory, error) {
	subCategory, err := s.GetSubCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	subCategory.CategoryID = categoryID
	subCategory.Name = name
	if err := s.subCategories.Update(ctx, subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

func (s *CatalogService) DeleteSubCategory(ctx context.Context, id uint64) error {
	if _, err := s.GetSubCategory(ctx, id); err != nil {
		return err
	}
	return s.subCategories.Delete(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, q repository.ListQuery) ([]*entity.Product, error) {
	return s.products.List(ctx, q)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint64) (*entity.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if _, err := s.GetCategory(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if _, err := s.GetProduct(ctx, product.ID); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint64) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// ProductExists backs the existence-guard middleware on product routes.
func (s *CatalogService) ProductExists(ctx context.Context, id uint64) (bool, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return product != nil, nil
}

// CategoryExists backs the existence-guard middleware on category routes.
func (s *CatalogService) CategoryExists(ctx context.Context, id uint64) (bool, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return category != nil, nil
}
