package controller

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	dto "github.com/freshmarket/commerce-api/app/dto/http"
	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// listQueryFromContext builds a ListQuery from the standard pagination query
// params. Out-of-range values fall back to repository defaults.
func listQueryFromContext(ctx echo.Context) repository.ListQuery {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	sortBy, _ := strconv.Atoi(ctx.QueryParam("sort_by"))
	return repository.ListQuery{
		Page:     page,
		Limit:    limit,
		Keywords: ctx.QueryParam("keywords"),
		SortBy:   sortBy,
	}
}

type CatalogController struct {
	catalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func (c *CatalogController) ListCategories(ctx echo.Context) error {
	categories, err := c.catalogService.ListCategories(ctx.Request().Context(), listQueryFromContext(ctx))
	if err != nil {
		logrus.WithError(err).Error("List categories failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewCategoryListResponse(categories))
}

func (c *CatalogController) GetCategory(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid category id"})
	}

	category, err := c.catalogService.GetCategory(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "category not found"})
		}
		logrus.WithError(err).WithField("category_id", id).Error("Get category failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

func (c *CatalogController) CreateCategory(ctx echo.Context) error {
	req, err := dto.NewCategoryRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	category, err := c.catalogService.CreateCategory(ctx.Request().Context(), req.Name)
	if err != nil {
		logrus.WithError(err).Error("Create category failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("category_id", category.ID).Info("Category created")
	return ctx.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

func (c *CatalogController) UpdateCategory(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid category id"})
	}

	req, err := dto.NewCategoryRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	category, err := c.catalogService.UpdateCategory(ctx.Request().Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "category not found"})
		}
		logrus.WithError(err).WithField("category_id", id).Error("Update category failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

func (c *CatalogController) DeleteCategory(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid category id"})
	}

	if err = c.catalogService.DeleteCategory(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "category not found"})
		}
		logrus.WithError(err).WithField("category_id", id).Error("Delete category failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("category_id", id).Info("Category deleted")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "category deleted"})
}

func (c *CatalogController) ListSubCategories(ctx echo.Context) error {
	categoryID, err := strconv.ParseUint(ctx.QueryParam("category_id"), 10, 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid category_id"})
	}

	subCategories, err := c.catalogService.ListSubCategories(ctx.Request().Context(), categoryID, listQueryFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "category not found"})
		}
		logrus.WithError(err).WithField("category_id", categoryID).Error("List subcategories failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewSubCategoryListResponse(subCategories))
}

func (c *CatalogController) GetSubCategory(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid subcategory id"})
	}

	subCategory, err := c.catalogService.GetSubCategory(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "subcategory not found"})
		}
		logrus.WithError(err).WithField("subcategory_id", id).Error("Get subcategory failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewSubCategoryResponse(subCategory))
}

func (c *CatalogController) CreateSubCategory(ctx echo.Context) error {
	req, err := dto.NewSubCategoryRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	subCategory, err := c.catalogService.CreateSubCategory(ctx.Request().Context(), req.CategoryID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "category not found"})
		}
		logrus.WithError(err).Error("Create subcategory failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("subcategory_id", subCategory.ID).Info("Subcategory created")
	return ctx.JSON(http.StatusCreated, dto.NewSubCategoryResponse(subCategory))
}

func (c *CatalogController) UpdateSubCategory(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid subcategory id"})
	}

	req, err := dto.NewSubCategoryRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	subCategory, err := c.catalogService.UpdateSubCategory(ctx.Request().Context(), id, req.CategoryID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrSubCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "subcategory not found"})
		}
		logrus.WithError(err).WithField("subcategory_id", id).Error("Update subcategory failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewSubCategoryResponse(subCategory))
}

func (c *CatalogController) DeleteSubCategory(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid subcategory id"})
	}

	if err = c.catalogService.DeleteSubCategory(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrSubCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "subcategory not found"})
		}
		logrus.WithError(err).WithField("subcategory_id", id).Error("Delete subcategory failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("subcategory_id", id).Info("Subcategory deleted")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "subcategory deleted"})
}

func (c *CatalogController) ListProducts(ctx echo.Context) error {
	products, err := c.catalogService.ListProducts(ctx.Request().Context(), listQueryFromContext(ctx))
	if err != nil {
		logrus.WithError(err).Error("List products failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewProductListResponse(products))
}

func (c *CatalogController) GetProduct(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product id"})
	}

	product, err := c.catalogService.GetProduct(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "product not found"})
		}
		logrus.WithError(err).WithField("product_id", id).Error("Get product failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewProductResponse(product))
}

func productFromRequest(req *dto.ProductRequest) *entity.Product {
	product := &entity.Product{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Price:           req.Price,
		Unit:            req.Unit,
		Status:          req.Status,
		Origin:          req.Origin,
		InventoryStatus: req.InventoryStatus,
		Quantity:        req.Quantity,
	}
	if req.SubCategoryID != nil {
		product.SubCategoryID = sql.NullInt64{Int64: *req.SubCategoryID, Valid: true}
	}
	return product
}

func (c *CatalogController) CreateProduct(ctx echo.Context) error {
	req, err := dto.NewProductRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	product, err := c.catalogService.CreateProduct(ctx.Request().Context(), productFromRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "category not found"})
		}
		logrus.WithError(err).Error("Create product failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("product_id", product.ID).Info("Product created")
	return ctx.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

func (c *CatalogController) UpdateProduct(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product id"})
	}

	req, err := dto.NewProductRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	product := productFromRequest(req)
	product.ID = id
	product, err = c.catalogService.UpdateProduct(ctx.Request().Context(), product)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "product not found"})
		}
		logrus.WithError(err).WithField("product_id", id).Error("Update product failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewProductResponse(product))
}

func (c *CatalogController) DeleteProduct(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product id"})
	}

	if err = c.catalogService.DeleteProduct(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "product not found"})
		}
		logrus.WithError(err).WithField("product_id", id).Error("Delete product failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("product_id", id).Info("Product deleted")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "product deleted"})
}
