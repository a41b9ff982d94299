package controller

import (
	"errors"
	"net/http"
	"time"

	dto "github.com/freshmarket/commerce-api/app/dto/http"
	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type CustomerController struct {
	customerService *service.CustomerService
}

func NewCustomerController(customerService *service.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

func (c *CustomerController) GetProfile(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	user, err := c.customerService.GetProfile(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Get profile failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewProfileResponse(user))
}

func (c *CustomerController) UpdateProfile(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	req, err := dto.NewUpdateProfileRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	update := service.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Gender:   req.Gender,
	}
	if req.Birthday != nil {
		// Validate already checked the format.
		birthday, _ := time.Parse("2006-01-02", *req.Birthday)
		update.Birthday = &birthday
	}

	user, err := c.customerService.UpdateProfile(ctx.Request().Context(), userID, update)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Update profile failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Profile updated")
	return ctx.JSON(http.StatusOK, dto.NewProfileResponse(user))
}

func (c *CustomerController) GetPermissions(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	permission, err := c.customerService.GetPermissions(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Get permissions failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewPermissionResponse(permission))
}

func (c *CustomerController) ListAddresses(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	addresses, err := c.customerService.ListAddresses(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List addresses failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewAddressListResponse(addresses))
}

func (c *CustomerController) CreateAddress(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	req, err := dto.NewAddressRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	address, err := c.customerService.CreateAddress(ctx.Request().Context(), &entity.UserAddress{
		UserID:       userID,
		FullAddress:  req.FullAddress,
		CityCode:     req.CityCode,
		DistrictCode: req.DistrictCode,
		WardCode:     req.WardCode,
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create address failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"address_id": address.ID,
	}).Info("Address created")
	return ctx.JSON(http.StatusCreated, dto.NewAddressResponse(address))
}

func (c *CustomerController) UpdateAddress(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid address id"})
	}

	req, err := dto.NewAddressRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	address, err := c.customerService.UpdateAddress(ctx.Request().Context(), userID, &entity.UserAddress{
		ID:           id,
		FullAddress:  req.FullAddress,
		CityCode:     req.CityCode,
		DistrictCode: req.DistrictCode,
		WardCode:     req.WardCode,
	})
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "address not found"})
		}
		if errors.Is(err, service.ErrAddressForbidden) {
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "address does not belong to this customer"})
		}
		logrus.WithError(err).WithField("address_id", id).Error("Update address failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewAddressResponse(address))
}

func (c *CustomerController) DeleteAddress(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid address id"})
	}

	if err = c.customerService.DeleteAddress(ctx.Request().Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "address not found"})
		}
		if errors.Is(err, service.ErrAddressForbidden) {
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "address does not belong to this customer"})
		}
		logrus.WithError(err).WithField("address_id", id).Error("Delete address failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"address_id": id,
	}).Info("Address deleted")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "address deleted"})
}
