package controller

import (
	"errors"
	"net/http"
	"strconv"

	dto "github.com/freshmarket/commerce-api/app/dto/http"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type GeoController struct {
	geoService *service.GeoService
}

func NewGeoController(geoService *service.GeoService) *GeoController {
	return &GeoController{geoService: geoService}
}

func (c *GeoController) ListCities(ctx echo.Context) error {
	cities, err := c.geoService.ListCities(ctx.Request().Context(), ctx.QueryParam("keywords"))
	if err != nil {
		logrus.WithError(err).Error("List cities failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewCityListResponse(cities))
}

func (c *GeoController) GetCity(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid city id"})
	}

	city, err := c.geoService.GetCity(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "city not found"})
		}
		logrus.WithError(err).WithField("city_id", id).Error("Get city failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewCityResponse(city))
}

func (c *GeoController) UpdateCity(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid city id"})
	}

	req, err := dto.NewGeoNameRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	city, err := c.geoService.GetCity(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "city not found"})
		}
		logrus.WithError(err).WithField("city_id", id).Error("Update city failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	city.Name = req.Name
	city, err = c.geoService.UpdateCity(ctx.Request().Context(), city)
	if err != nil {
		logrus.WithError(err).WithField("city_id", id).Error("Update city failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewCityResponse(city))
}

func (c *GeoController) ListDistricts(ctx echo.Context) error {
	// city_code = 0 means no filter.
	cityCode, _ := strconv.ParseInt(ctx.QueryParam("city_code"), 10, 64)

	districts, err := c.geoService.ListDistricts(ctx.Request().Context(), cityCode, ctx.QueryParam("keywords"))
	if err != nil {
		logrus.WithError(err).Error("List districts failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewDistrictListResponse(districts))
}

func (c *GeoController) GetDistrict(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid district id"})
	}

	district, err := c.geoService.GetDistrict(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDistrictNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "district not found"})
		}
		logrus.WithError(err).WithField("district_id", id).Error("Get district failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewDistrictResponse(district))
}

func (c *GeoController) UpdateDistrict(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid district id"})
	}

	req, err := dto.NewGeoNameRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	district, err := c.geoService.GetDistrict(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDistrictNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "district not found"})
		}
		logrus.WithError(err).WithField("district_id", id).Error("Update district failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	district.Name = req.Name
	district, err = c.geoService.UpdateDistrict(ctx.Request().Context(), district)
	if err != nil {
		logrus.WithError(err).WithField("district_id", id).Error("Update district failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewDistrictResponse(district))
}

func (c *GeoController) ListWards(ctx echo.Context) error {
	// district_code = 0 means no filter.
	districtCode, _ := strconv.ParseInt(ctx.QueryParam("district_code"), 10, 64)

	wards, err := c.geoService.ListWards(ctx.Request().Context(), districtCode, ctx.QueryParam("keywords"))
	if err != nil {
		logrus.WithError(err).Error("List wards failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewWardListResponse(wards))
}

func (c *GeoController) GetWard(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid ward id"})
	}

	ward, err := c.geoService.GetWard(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWardNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "ward not found"})
		}
		logrus.WithError(err).WithField("ward_id", id).Error("Get ward failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewWardResponse(ward))
}

func (c *GeoController) UpdateWard(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid ward id"})
	}

	req, err := dto.NewGeoNameRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	ward, err := c.geoService.GetWard(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWardNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "ward not found"})
		}
		logrus.WithError(err).WithField("ward_id", id).Error("Update ward failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	ward.Name = req.Name
	ward, err = c.geoService.UpdateWard(ctx.Request().Context(), ward)
	if err != nil {
		logrus.WithError(err).WithField("ward_id", id).Error("Update ward failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewWardResponse(ward))
}
