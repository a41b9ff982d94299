package middleware

import (
	"net/http"
	"strings"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type accessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*service.Claims, error)
	ValidateAccessTokenAllowExpired(tokenString string) (*service.Claims, error)
}

type AuthMiddleware struct {
	authService accessTokenValidator
}

func NewAuthMiddleware(authService accessTokenValidator) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireToken(next, m.authService.ValidateAccessToken)
}

// RequireAuthAllowExpired accepts an authentic access token even after its
// lifetime has elapsed. The refresh-token route uses it, since its whole
// purpose is trading an expired access token for a fresh one.
func (m *AuthMiddleware) RequireAuthAllowExpired(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireToken(next, m.authService.ValidateAccessTokenAllowExpired)
}

func (m *AuthMiddleware) requireToken(next echo.HandlerFunc, validate func(string) (*service.Claims, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			logrus.Debug("Missing authorization header")
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "missing authorization header",
			})
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logrus.Debug("Invalid authorization header format")
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid authorization header format",
			})
		}

		tokenString := parts[1]
		claims, err := validate(tokenString)
		if err != nil {
			logrus.Debug("Invalid or expired access token")
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid or expired token",
			})
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		return next(c)
	}
}

// RequireAdmin allows only back-office roles through. It must run after
// RequireAuth so the role is already on the context.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("user_role").(string)
		if !ok {
			logrus.Debug("Missing user_role in context")
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "unauthorized",
			})
		}

		if role != entity.RoleAdmin && role != entity.RoleSuperAdmin {
			logrus.WithField("role", role).Debug("Role not permitted")
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "admin role required",
			})
		}

		return next(c)
	}
}
