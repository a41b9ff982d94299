package http

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func bindRequest[T any](ctx echo.Context) (*T, error) {
	var body T
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

func NewSignUpRequestFromContext(ctx echo.Context) (*SignUpRequest, error) {
	return bindRequest[SignUpRequest](ctx)
}

func (r *SignUpRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("email and password are required")
	}

	return nil
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewSignInRequestFromContext(ctx echo.Context) (*SignInRequest, error) {
	return bindRequest[SignInRequest](ctx)
}

func (r *SignInRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("email and password are required")
	}

	return nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func NewChangePasswordRequestFromContext(ctx echo.Context) (*ChangePasswordRequest, error) {
	return bindRequest[ChangePasswordRequest](ctx)
}

func (r *ChangePasswordRequest) Validate() error {
	if strings.TrimSpace(r.OldPassword) == "" || strings.TrimSpace(r.NewPassword) == "" {
		return errors.New("old_password and new_password are required")
	}

	return nil
}

type ForgotPasswordRequest struct {
	Email    string `json:"email"`
	LangCode string `json:"lang_code,omitempty"`
}

func NewForgotPasswordRequestFromContext(ctx echo.Context) (*ForgotPasswordRequest, error) {
	return bindRequest[ForgotPasswordRequest](ctx)
}

func (r *ForgotPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}

	return nil
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func NewResetPasswordRequestFromContext(ctx echo.Context) (*ResetPasswordRequest, error) {
	return bindRequest[ResetPasswordRequest](ctx)
}

func (r *ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" || strings.TrimSpace(r.NewPassword) == "" {
		return errors.New("token and new_password are required")
	}

	return nil
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Gender   *int64  `json:"gender,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
}

func NewUpdateProfileRequestFromContext(ctx echo.Context) (*UpdateProfileRequest, error) {
	return bindRequest[UpdateProfileRequest](ctx)
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Gender != nil && (*r.Gender < 0 || *r.Gender > 2) {
		return errors.New("gender must be 0, 1 or 2")
	}
	if r.Birthday != nil {
		if _, err := time.Parse("2006-01-02", *r.Birthday); err != nil {
			return errors.New("birthday must be in YYYY-MM-DD format")
		}
	}

	return nil
}

type AddressRequest struct {
	FullAddress  string `json:"full_address"`
	CityCode     int64  `json:"city_code"`
	DistrictCode int64  `json:"district_code"`
	WardCode     int64  `json:"ward_code"`
}

func NewAddressRequestFromContext(ctx echo.Context) (*AddressRequest, error) {
	return bindRequest[AddressRequest](ctx)
}

func (r *AddressRequest) Validate() error {
	if strings.TrimSpace(r.FullAddress) == "" {
		return errors.New("full_address is required")
	}
	if r.CityCode <= 0 || r.DistrictCode <= 0 || r.WardCode <= 0 {
		return errors.New("city_code, district_code and ward_code are required")
	}

	return nil
}

type CategoryRequest struct {
	Name string `json:"name"`
}

func NewCategoryRequestFromContext(ctx echo.Context) (*CategoryRequest, error) {
	return bindRequest[CategoryRequest](ctx)
}

func (r *CategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}

	return nil
}

type SubCategoryRequest struct {
	CategoryID uint64 `json:"category_id"`
	Name       string `json:"name"`
}

func NewSubCategoryRequestFromContext(ctx echo.Context) (*SubCategoryRequest, error) {
	return bindRequest[SubCategoryRequest](ctx)
}

func (r *SubCategoryRequest) Validate() error {
	if r.CategoryID == 0 {
		return errors.New("category_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}

	return nil
}

type ProductRequest struct {
	CategoryID      uint64 `json:"category_id"`
	SubCategoryID   *int64 `json:"sub_category_id,omitempty"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	Unit            int    `json:"unit"`
	Status          int    `json:"status"`
	Origin          int    `json:"origin"`
	InventoryStatus int    `json:"inventory_status"`
	Quantity        int64  `json:"quantity"`
}

func NewProductRequestFromContext(ctx echo.Context) (*ProductRequest, error) {
	return bindRequest[ProductRequest](ctx)
}

func (r *ProductRequest) Validate() error {
	if r.CategoryID == 0 {
		return errors.New("category_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Price < 0 {
		return errors.New("price must not be negative")
	}
	if r.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}

	return nil
}

type OrderItemRequest struct {
	ProductID uint64 `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
}

type CreateOrderRequest struct {
	PaymentMethod int                `json:"payment_method"`
	ReceivedType  int                `json:"received_type"`
	Note          string             `json:"note,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}

func NewCreateOrderRequestFromContext(ctx echo.Context) (*CreateOrderRequest, error) {
	return bindRequest[CreateOrderRequest](ctx)
}

func (r *CreateOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("items are required")
	}
	for _, item := range r.Items {
		if item.ProductID == 0 {
			return errors.New("items require a product_id")
		}
		if item.Quantity <= 0 {
			return errors.New("item quantity must be greater than 0")
		}
		if item.Price < 0 {
			return errors.New("item price must not be negative")
		}
	}

	return nil
}

// UpdateOrderRequest is a partial update. Pointer fields distinguish "leave
// unchanged" (absent) from an explicit new value, so a note can be cleared by
// sending an empty string.
type UpdateOrderRequest struct {
	Status        int     `json:"status"`
	PaymentMethod *int    `json:"payment_method"`
	PaymentStatus *int    `json:"payment_status"`
	ReceivedType  *int    `json:"received_type"`
	Note          *string `json:"note"`
}

func NewUpdateOrderRequestFromContext(ctx echo.Context) (*UpdateOrderRequest, error) {
	return bindRequest[UpdateOrderRequest](ctx)
}

func (r *UpdateOrderRequest) Validate() error {
	if r.Status == 0 {
		return errors.New("status is required")
	}

	return nil
}

type ShipmentRequest struct {
	OrderID  uint64 `json:"order_id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address"`
}

func NewShipmentRequestFromContext(ctx echo.Context) (*ShipmentRequest, error) {
	return bindRequest[ShipmentRequest](ctx)
}

func (r *ShipmentRequest) Validate() error {
	if r.OrderID == 0 {
		return errors.New("order_id is required")
	}
	if strings.TrimSpace(r.FullName) == "" || strings.TrimSpace(r.Phone) == "" {
		return errors.New("full_name and phone are required")
	}
	if strings.TrimSpace(r.Address) == "" {
		return errors.New("address is required")
	}

	return nil
}

type CreateCommentRequest struct {
	ProductID uint64 `json:"product_id"`
	ParentID  *int64 `json:"parent_id,omitempty"`
	Content   string `json:"content"`
}

func NewCreateCommentRequestFromContext(ctx echo.Context) (*CreateCommentRequest, error) {
	return bindRequest[CreateCommentRequest](ctx)
}

func (r *CreateCommentRequest) Validate() error {
	if r.ProductID == 0 {
		return errors.New("product_id is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is required")
	}

	return nil
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func NewUpdateCommentRequestFromContext(ctx echo.Context) (*UpdateCommentRequest, error) {
	return bindRequest[UpdateCommentRequest](ctx)
}

func (r *UpdateCommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is required")
	}

	return nil
}

type GeoNameRequest struct {
	Name string `json:"name"`
}

func NewGeoNameRequestFromContext(ctx echo.Context) (*GeoNameRequest, error) {
	return bindRequest[GeoNameRequest](ctx)
}

func (r *GeoNameRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}

	return nil
}
