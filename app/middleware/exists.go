package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ExistenceLookup reports whether the entity with the given id exists.
type ExistenceLookup func(ctx context.Context, id uint64) (bool, error)

// RequireExists short-circuits a request with 404 when the id in the named
// path param does not resolve to an entity. It replaces per-route existence
// checks with a single guard parameterized by a lookup function.
func RequireExists(entityName, paramName string, lookup ExistenceLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := strconv.ParseUint(c.Param(paramName), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"error": "invalid " + entityName + " id",
				})
			}

			exists, err := lookup(c.Request().Context(), id)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"entity": entityName,
					"id":     id,
				}).Error("Existence check failed")
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "internal server error",
				})
			}
			if !exists {
				logrus.WithFields(logrus.Fields{
					"entity": entityName,
					"id":     id,
				}).Debug("Entity not found")
				return c.JSON(http.StatusNotFound, map[string]string{
					"error": entityName + " not found",
				})
			}

			return next(c)
		}
	}
}
