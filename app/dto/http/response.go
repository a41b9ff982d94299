package http

import (
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileResponse is the public view of a user row. Password and reset-token
// fields never leave the service.
type ProfileResponse struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Gender   *int64 `json:"gender,omitempty"`
	Birthday string `json:"birthday,omitempty"`
}

func NewProfileResponse(user *entity.User) *ProfileResponse {
	resp := &ProfileResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.FullName.Valid {
		resp.FullName = user.FullName.String
	}
	if user.Phone.Valid {
		resp.Phone = user.Phone.String
	}
	if user.Gender.Valid {
		gender := user.Gender.Int64
		resp.Gender = &gender
	}
	if user.Birthday.Valid {
		resp.Birthday = user.Birthday.Time.Format("2006-01-02")
	}
	return resp
}

type PermissionResponse struct {
	UserID    uint64 `json:"user_id"`
	CanCreate bool   `json:"can_create"`
	CanUpdate bool   `json:"can_update"`
	CanRemove bool   `json:"can_remove"`
}

func NewPermissionResponse(permission *entity.UserPermission) *PermissionResponse {
	return &PermissionResponse{
		UserID:    permission.UserID,
		CanCreate: permission.Create,
		CanUpdate: permission.Update,
		CanRemove: permission.Remove,
	}
}

type SignUpResponse struct {
	UserID  uint64 `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type SignInResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresIn   int64            `json:"expires_in"`
	Profile     *ProfileResponse `json:"profile"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type CategoryResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCategoryResponse(category *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func NewCategoryListResponse(categories []*entity.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, NewCategoryResponse(category))
	}
	return out
}

type SubCategoryResponse struct {
	ID         uint64    `json:"id"`
	CategoryID uint64    `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewSubCategoryResponse(subCategory *entity.SubCategory) *SubCategoryResponse {
	return &SubCategoryResponse{
		ID:         subCategory.ID,
		CategoryID: subCategory.CategoryID,
		Name:       subCategory.Name,
		CreatedAt:  subCategory.CreatedAt,
		UpdatedAt:  subCategory.UpdatedAt,
	}
}

func NewSubCategoryListResponse(subCategories []*entity.SubCategory) []*SubCategoryResponse {
	out := make([]*SubCategoryResponse, 0, len(subCategories))
	for _, subCategory := range subCategories {
		out = append(out, NewSubCategoryResponse(subCategory))
	}
	return out
}

type ProductResponse struct {
	ID              uint64    `json:"id"`
	CategoryID      uint64    `json:"category_id"`
	SubCategoryID   *int64    `json:"sub_category_id,omitempty"`
	Name            string    `json:"name"`
	Price           int64     `json:"price"`
	Unit            int       `json:"unit"`
	Status          int       `json:"status"`
	Origin          int       `json:"origin"`
	InventoryStatus int       `json:"inventory_status"`
	Quantity        int64     `json:"quantity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewProductResponse(product *entity.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:              product.ID,
		CategoryID:      product.CategoryID,
		Name:            product.Name,
		Price:           product.Price,
		Unit:            product.Unit,
		Status:          product.Status,
		Origin:          product.Origin,
		InventoryStatus: product.InventoryStatus,
		Quantity:        product.Quantity,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if product.SubCategoryID.Valid {
		subCategoryID := product.SubCategoryID.Int64
		resp.SubCategoryID = &subCategoryID
	}
	return resp
}

func NewProductListResponse(products []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, NewProductResponse(product))
	}
	return out
}

type OrderItemResponse struct {
	ID        uint64 `json:"id"`
	ProductID uint64 `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
}

type OrderResponse struct {
	ID            uint64               `json:"id"`
	OrderNumber   string               `json:"order_number"`
	CustomerID    uint64               `json:"customer_id"`
	Status        int                  `json:"status"`
	PaymentMethod int                  `json:"payment_method"`
	PaymentStatus int                  `json:"payment_status"`
	ReceivedType  int                  `json:"received_type"`
	TotalPrice    int64                `json:"total_price"`
	Note          string               `json:"note,omitempty"`
	Items         []*OrderItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func NewOrderResponse(order *entity.Order, items []*entity.OrderItem) *OrderResponse {
	resp := &OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    order.CustomerID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		ReceivedType:  order.ReceivedType,
		TotalPrice:    order.TotalPrice,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	if order.Note.Valid {
		resp.Note = order.Note.String
	}
	for _, item := range items {
		resp.Items = append(resp.Items, &OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return resp
}

func NewOrderListResponse(orders []*entity.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderResponse(order, nil))
	}
	return out
}

type ShipmentResponse struct {
	ID        uint64    `json:"id"`
	OrderID   uint64    `json:"order_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewShipmentResponse(shipment *entity.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:        shipment.ID,
		OrderID:   shipment.OrderID,
		FullName:  shipment.FullName,
		Phone:     shipment.Phone,
		Email:     shipment.Email,
		Address:   shipment.Address,
		CreatedAt: shipment.CreatedAt,
		UpdatedAt: shipment.UpdatedAt,
	}
}

type AddressResponse struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	FullAddress  string    `json:"full_address"`
	CityCode     int64     `json:"city_code"`
	DistrictCode int64     `json:"district_code"`
	WardCode     int64     `json:"ward_code"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewAddressResponse(address *entity.UserAddress) *AddressResponse {
	return &AddressResponse{
		ID:           address.ID,
		UserID:       address.UserID,
		FullAddress:  address.FullAddress,
		CityCode:     address.CityCode,
		DistrictCode: address.DistrictCode,
		WardCode:     address.WardCode,
		CreatedAt:    address.CreatedAt,
		UpdatedAt:    address.UpdatedAt,
	}
}

func NewAddressListResponse(addresses []*entity.UserAddress) []*AddressResponse {
	out := make([]*AddressResponse, 0, len(addresses))
	for _, address := range addresses {
		out = append(out, NewAddressResponse(address))
	}
	return out
}

type CommentResponse struct {
	ID         uint64    `json:"id"`
	ProductID  uint64    `json:"product_id"`
	CustomerID uint64    `json:"customer_id"`
	ParentID   *int64    `json:"parent_id,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewCommentResponse(comment *entity.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:         comment.ID,
		ProductID:  comment.ProductID,
		CustomerID: comment.CustomerID,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
	}
	if comment.ParentID.Valid {
		parentID := comment.ParentID.Int64
		resp.ParentID = &parentID
	}
	return resp
}

func NewCommentListResponse(comments []*entity.Comment) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, NewCommentResponse(comment))
	}
	return out
}

type CityResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Code int64  `json:"code"`
}

func NewCityResponse(city *entity.City) *CityResponse {
	return &CityResponse{ID: city.ID, Name: city.Name, Code: city.Code}
}

func NewCityListResponse(cities []*entity.City) []*CityResponse {
	out := make([]*CityResponse, 0, len(cities))
	for _, city := range cities {
		out = append(out, NewCityResponse(city))
	}
	return out
}

type DistrictResponse struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Code     int64  `json:"code"`
	CityCode int64  `json:"city_code"`
}

func NewDistrictResponse(district *entity.District) *DistrictResponse {
	return &DistrictResponse{
		ID:       district.ID,
		Name:     district.Name,
		Code:     district.Code,
		CityCode: district.CityCode,
	}
}

func NewDistrictListResponse(districts []*entity.District) []*DistrictResponse {
	out := make([]*DistrictResponse, 0, len(districts))
	for _, district := range districts {
		out = append(out, NewDistrictResponse(district))
	}
	return out
}

type WardResponse struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Code         int64  `json:"code"`
	DistrictCode int64  `json:"district_code"`
}

func NewWardResponse(ward *entity.Ward) *WardResponse {
	return &WardResponse{
		ID:           ward.ID,
		Name:         ward.Name,
		Code:         ward.Code,
		DistrictCode: ward.DistrictCode,
	}
}

func NewWardListResponse(wards []*entity.Ward) []*WardResponse {
	out := make([]*WardResponse, 0, len(wards))
	for _, ward := range wards {
		out = append(out, NewWardResponse(ward))
	}
	return out
}
