package controller

import (
	"database/sql"
	"errors"
	"net/http"

	dto "github.com/freshmarket/commerce-api/app/dto/http"
	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	req, err := dto.NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	order := &entity.Order{
		CustomerID:    userID,
		Status:        entity.OrderStatusWaiting,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: entity.PaymentStatusUnpaid,
		ReceivedType:  req.ReceivedType,
	}
	if req.Note != "" {
		order.Note = sql.NullString{String: req.Note, Valid: true}
	}

	items := make([]*entity.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &entity.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	logrus.WithField("user_id", userID).Info("Create order request received")
	order, err = c.orderService.CreateOrder(ctx.Request().Context(), order, items)
	if err != nil {
		if errors.Is(err, service.ErrOrderEmpty) {
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "order must contain at least one item"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Create order failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	}).Info("Order created")
	return ctx.JSON(http.StatusCreated, dto.NewOrderResponse(order, items))
}

func (c *OrderController) GetOrder(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order id"})
	}

	order, items, err := c.orderService.GetOrder(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
		}
		logrus.WithError(err).WithField("order_id", id).Error("Get order failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewOrderResponse(order, items))
}

func (c *OrderController) ListMyOrders(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	orders, err := c.orderService.ListOrdersByCustomer(ctx.Request().Context(), userID, listQueryFromContext(ctx))
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List orders failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// ListCustomerOrders is the back-office view of another customer's orders.
func (c *OrderController) ListCustomerOrders(ctx echo.Context) error {
	customerID, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid customer id"})
	}

	orders, err := c.orderService.ListOrdersByCustomer(ctx.Request().Context(), customerID, listQueryFromContext(ctx))
	if err != nil {
		logrus.WithError(err).WithField("customer_id", customerID).Error("List customer orders failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order id"})
	}

	req, err := dto.NewUpdateOrderRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	order, _, err := c.orderService.GetOrder(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
		}
		logrus.WithError(err).WithField("order_id", id).Error("Update order failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	order.Status = req.Status
	if req.PaymentMethod != nil {
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.PaymentStatus != nil {
		order.PaymentStatus = *req.PaymentStatus
	}
	if req.ReceivedType != nil {
		order.ReceivedType = *req.ReceivedType
	}
	if req.Note != nil {
		// An explicit empty note clears the stored one.
		order.Note = sql.NullString{String: *req.Note, Valid: *req.Note != ""}
	}

	order, err = c.orderService.UpdateOrder(ctx.Request().Context(), order)
	if err != nil {
		logrus.WithError(err).WithField("order_id", id).Error("Update order failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("order_id", id).Info("Order updated")
	return ctx.JSON(http.StatusOK, dto.NewOrderResponse(order, nil))
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order id"})
	}

	if err = c.orderService.DeleteOrder(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
		}
		logrus.WithError(err).WithField("order_id", id).Error("Delete order failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("order_id", id).Info("Order deleted")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "order deleted"})
}

func (c *OrderController) CreateShipment(ctx echo.Context) error {
	req, err := dto.NewShipmentRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	shipment, err := c.orderService.CreateShipment(ctx.Request().Context(), &entity.Shipment{
		OrderID:  req.OrderID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
		}
		logrus.WithError(err).WithField("order_id", req.OrderID).Error("Create shipment failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("shipment_id", shipment.ID).Info("Shipment created")
	return ctx.JSON(http.StatusCreated, dto.NewShipmentResponse(shipment))
}

func (c *OrderController) GetShipment(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid shipment id"})
	}

	shipment, err := c.orderService.GetShipment(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrShipmentNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "shipment not found"})
		}
		logrus.WithError(err).WithField("shipment_id", id).Error("Get shipment failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewShipmentResponse(shipment))
}

func (c *OrderController) UpdateShipment(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid shipment id"})
	}

	req, err := dto.NewShipmentRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	shipment, err := c.orderService.UpdateShipment(ctx.Request().Context(), &entity.Shipment{
		ID:       id,
		OrderID:  req.OrderID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrShipmentNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "shipment not found"})
		}
		logrus.WithError(err).WithField("shipment_id", id).Error("Update shipment failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewShipmentResponse(shipment))
}

func (c *OrderController) DeleteShipment(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid shipment id"})
	}

	if err = c.orderService.DeleteShipment(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrShipmentNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "shipment not found"})
		}
		logrus.WithError(err).WithField("shipment_id", id).Error("Delete shipment failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("shipment_id", id).Info("Shipment deleted")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "shipment deleted"})
}
