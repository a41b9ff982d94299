package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freshmarket/commerce-api/app/controller"
	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/app/service"
	"github.com/freshmarket/commerce-api/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
)

const (
	findUserByEmailQuery = `(?s)SELECT id, email, password_hash, role, full_name, phone, gender, birthday,\s+reset_token_hash, reset_token_expires_at, created_at, updated_at\s+FROM users WHERE email = \?`
	findUserByIDQuery    = `(?s)SELECT id, email, password_hash, role, full_name, phone, gender, birthday,\s+reset_token_hash, reset_token_expires_at, created_at, updated_at\s+FROM users WHERE id = \?`
	insertUserQuery      = `(?s)INSERT INTO users \(email, password_hash, role, full_name, phone, gender, birthday, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?, \?, \?, \?\)`
	insertPermissionQry  = `(?s)INSERT INTO user_permissions \(user_id, can_create, can_update, can_remove, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?\)`
	upsertSessionQuery   = `(?s)INSERT INTO refresh_sessions \(user_id, token, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?\)\s+ON DUPLICATE KEY UPDATE token = VALUES\(token\), updated_at = VALUES\(updated_at\)`
	findSessionQuery     = `(?s)SELECT id, user_id, token, created_at, updated_at\s+FROM refresh_sessions WHERE user_id = \?`
	deleteSessionQuery   = `DELETE FROM refresh_sessions WHERE user_id = \?`
)

var userColumns = []string{
	"id",
	"email",
	"password_hash",
	"role",
	"full_name",
	"phone",
	"gender",
	"birthday",
	"reset_token_hash",
	"reset_token_expires_at",
	"created_at",
	"updated_at",
}

type authFixture struct {
	controller *controller.AuthController
	mock       sqlmock.Sqlmock
	hasher     *service.PasswordHasher
}

func newAuthControllerWithMock(t *testing.T) (*authFixture, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	cfg := &config.Config{
		AccessTokenSecret:  "test-access-secret",
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
		ResetTokenTTL:      10 * time.Minute,
		AdminOrigin:        "http://localhost:5173",
		CustomerOrigin:     "http://localhost:3000",
		PasswordPolicy:     config.PasswordPolicy{MinLength: 6},
	}

	hasher := service.NewPasswordHasher(4)
	tokens := service.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	resets := service.NewResetTicketSource(cfg.ResetTokenTTL)

	authService := service.NewAuthService(
		db,
		repository.NewUserRepository(db),
		repository.NewRefreshSessionRepository(db),
		hasher,
		tokens,
		resets,
		&service.LogMailer{},
		cfg,
	)

	return &authFixture{
		controller: controller.NewAuthController(authService),
		mock:       mock,
		hasher:     hasher,
	}, func() { _ = db.Close() }
}

func newJSONRequest(t *testing.T, method, path string, body any) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func (f *authFixture) userRow(t *testing.T, id uint64, email, password, role string) *sqlmock.Rows {
	t.Helper()

	passwordHash, err := f.hasher.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now()
	return sqlmock.NewRows(userColumns).
		AddRow(id, email, passwordHash, role, nil, nil, nil, nil, nil, nil, now, now)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	return body
}

func TestSignUp_Created(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("new@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns))
	f.mock.ExpectBegin()
	f.mock.ExpectExec(insertUserQuery).
		WillReturnResult(sqlmock.NewResult(3, 1))
	f.mock.ExpectExec(insertPermissionQry).
		WithArgs(uint64(3), false, false, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	f.mock.ExpectCommit()

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "new@x.com",
		"password": "secret1",
	})
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.SignUp(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["email"] != "new@x.com" {
		t.Fatalf("expected email new@x.com, got %v", body["email"])
	}
	if body["user_id"] != float64(3) {
		t.Fatalf("expected user_id 3, got %v", body["user_id"])
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignUp_ExistingEmailIsConflict(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("taken@x.com").
		WillReturnRows(f.userRow(t, 1, "taken@x.com", "secret1", entity.RoleCustomer))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "taken@x.com",
		"password": "secret1",
	})
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.SignUp(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestSignUp_MissingFieldsIsBadRequest(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "new@x.com",
	})
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.SignUp(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSignIn_Success(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("a@x.com").
		WillReturnRows(f.userRow(t, 1, "a@x.com", "secret1", entity.RoleCustomer))
	f.mock.ExpectExec(upsertSessionQuery).
		WithArgs(uint64(1), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.SignIn(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["access_token"] == "" {
		t.Fatal("expected access_token to be set")
	}
	profile, ok := body["profile"].(map[string]any)
	if !ok {
		t.Fatalf("expected profile object, got %#v", body["profile"])
	}
	if profile["email"] != "a@x.com" {
		t.Fatalf("expected profile email a@x.com, got %v", profile["email"])
	}
	if _, leaked := profile["password_hash"]; leaked {
		t.Fatal("profile must not expose the password hash")
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignIn_UnknownEmailIsNotFound(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	})
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.SignIn(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["error"] != "email is not correct" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestSignIn_WrongPasswordIsForbidden(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("a@x.com").
		WillReturnRows(f.userRow(t, 1, "a@x.com", "secret1", entity.RoleCustomer))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "a@x.com",
		"password": "wrong-pass",
	})
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.SignIn(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestSignIn_CustomerOnAdminContextIsUnauthorized(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("a@x.com").
		WillReturnRows(f.userRow(t, 1, "a@x.com", "secret1", entity.RoleCustomer))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/signin?context=admin", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.SignIn(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRefreshToken_MissingUserIsUnauthorized(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/refresh-token", nil)
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.RefreshToken(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRefreshToken_NoSessionIsForbidden(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findSessionQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "created_at", "updated_at"}))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/refresh-token", nil)
	ctx := echo.New().NewContext(req, rec)
	ctx.Set("user_id", uint64(1))

	if err := f.controller.RefreshToken(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["error"] != "no active session" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestChangePassword_WrongOldPasswordIsForbidden(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findUserByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(f.userRow(t, 1, "a@x.com", "secret1", entity.RoleCustomer))

	req, rec := newJSONRequest(t, http.MethodPut, "/api/auth/change-password", map[string]string{
		"old_password": "wrong-pass",
		"new_password": "fresh-secret",
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.Set("user_id", uint64(1))

	if err := f.controller.ChangePassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestResetPassword_InvalidTokenIsBadRequest(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(`(?s)SELECT id, email, .+FROM users WHERE reset_token_hash = \? AND reset_token_expires_at > \?`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userColumns))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"token":        "never-issued",
		"new_password": "fresh-secret",
	})
	ctx := echo.New().NewContext(req, rec)

	if err := f.controller.ResetPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["error"] != "reset token has expired or is invalid" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestLogout_Success(t *testing.T) {
	f, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectExec(deleteSessionQuery).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/auth/logout", nil)
	ctx := echo.New().NewContext(req, rec)
	ctx.Set("user_id", uint64(1))

	if err := f.controller.Logout(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
