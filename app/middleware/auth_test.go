package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/middleware"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/app/service"
	"github.com/freshmarket/commerce-api/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
)

const testAccessSecret = "test-access-secret"

func newIssuer() *service.TokenIssuer {
	return service.NewTokenIssuer(testAccessSecret, "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func newMiddleware(t *testing.T) (*middleware.AuthMiddleware, func()) {
	t.Helper()

	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	cfg := &config.Config{
		AccessTokenSecret:  testAccessSecret,
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
		ResetTokenTTL:      10 * time.Minute,
		PasswordPolicy:     config.PasswordPolicy{MinLength: 1},
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewRefreshSessionRepository(db)
	authService := service.NewAuthService(
		db,
		userRepo,
		sessionRepo,
		service.NewPasswordHasher(4),
		newIssuer(),
		service.NewResetTicketSource(cfg.ResetTokenTTL),
		&service.LogMailer{},
		cfg,
	)

	return middleware.NewAuthMiddleware(authService), func() { _ = db.Close() }
}

func signAccessToken(t *testing.T, userID uint64, email, role string) string {
	t.Helper()

	token, _, err := newIssuer().IssueAccessToken(userID, email, role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	authMiddleware, cleanup := newMiddleware(t)
	defer cleanup()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler := authMiddleware.RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_InvalidHeaderFormat(t *testing.T) {
	authMiddleware, cleanup := newMiddleware(t)
	defer cleanup()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler := authMiddleware.RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	authMiddleware, cleanup := newMiddleware(t)
	defer cleanup()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler := authMiddleware.RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_SetsContextOnValidToken(t *testing.T) {
	authMiddleware, cleanup := newMiddleware(t)
	defer cleanup()

	tokenString := signAccessToken(t, 1, "user@example.com", entity.RoleCustomer)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler := authMiddleware.RequireAuth(func(c echo.Context) error {
		userID, ok := c.Get("user_id").(uint64)
		if !ok || userID != 1 {
			t.Fatalf("expected user_id 1, got %v", c.Get("user_id"))
		}
		email, ok := c.Get("user_email").(string)
		if !ok || email != "user@example.com" {
			t.Fatalf("expected user_email user@example.com, got %v", c.Get("user_email"))
		}
		role, ok := c.Get("user_role").(string)
		if !ok || role != entity.RoleCustomer {
			t.Fatalf("expected user_role CUSTOMER, got %v", c.Get("user_role"))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireAuthAllowExpired_AcceptsElapsedToken(t *testing.T) {
	authMiddleware, cleanup := newMiddleware(t)
	defer cleanup()

	expiredIssuer := service.NewTokenIssuer(testAccessSecret, "test-refresh-secret", -time.Minute, -time.Minute)
	tokenString, _, err := expiredIssuer.IssueAccessToken(3, "stale@example.com", entity.RoleCustomer)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler := authMiddleware.RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("RequireAuth should reject an expired token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	ctx = e.NewContext(req, rec)
	handler = authMiddleware.RequireAuthAllowExpired(func(c echo.Context) error {
		userID, ok := c.Get("user_id").(uint64)
		if !ok || userID != 3 {
			t.Fatalf("expected user_id 3, got %v", c.Get("user_id"))
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireAuthAllowExpired_RejectsForgedToken(t *testing.T) {
	authMiddleware, cleanup := newMiddleware(t)
	defer cleanup()

	forged := service.NewTokenIssuer("some-other-secret", "test-refresh-secret", -time.Minute, -time.Minute)
	tokenString, _, err := forged.IssueAccessToken(3, "stale@example.com", entity.RoleCustomer)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler := authMiddleware.RequireAuthAllowExpired(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAdmin_RejectsCustomerRole(t *testing.T) {
	authMiddleware, cleanup := newMiddleware(t)
	defer cleanup()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_role", entity.RoleCustomer)

	handler := authMiddleware.RequireAdmin(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestRequireAdmin_AllowsAdminRoles(t *testing.T) {
	authMiddleware, cleanup := newMiddleware(t)
	defer cleanup()

	for _, role := range []string{entity.RoleAdmin, entity.RoleSuperAdmin} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.Set("user_role", role)

		handler := authMiddleware.RequireAdmin(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		if err := handler(ctx); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("role %s: expected status 200, got %d", role, rec.Code)
		}
	}
}
