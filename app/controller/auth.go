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

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// currentUserID reads the user id the auth middleware stored on the context.
func currentUserID(ctx echo.Context) (uint64, bool) {
	userID, ok := ctx.Get("user_id").(uint64)
	return userID, ok
}

func paramID(ctx echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(ctx.Param(name), 10, 64)
}

// adminContext reports whether the request came through the back-office
// origin. The storefront and the admin panel share these routes.
func adminContext(ctx echo.Context) bool {
	return ctx.QueryParam("context") == "admin"
}

func (c *AuthController) SignUp(ctx echo.Context) error {
	req, err := dto.NewSignUpRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind sign up request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Sign up validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Sign up request received")
	user, err := c.authService.SignUp(ctx.Request().Context(), req.Email, req.Password, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			logrus.WithField("email", req.Email).Warn("Sign up failed: email already registered")
			return ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: "email is already registered"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("email", req.Email).Warn("Sign up failed: weak password")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Sign up failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User signed up")

	return ctx.JSON(http.StatusCreated, dto.SignUpResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Message: "sign up successful",
	})
}

func (c *AuthController) SignIn(ctx echo.Context) error {
	req, err := dto.NewSignInRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind sign in request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Sign in validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Sign in request received")
	result, err := c.authService.SignIn(ctx.Request().Context(), req.Email, req.Password, adminContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("email", req.Email).Warn("Sign in failed: email not registered")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "email is not correct"})
		}
		if errors.Is(err, service.ErrPasswordIncorrect) {
			logrus.WithField("email", req.Email).Warn("Sign in failed: password incorrect")
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "password is not correct"})
		}
		if errors.Is(err, service.ErrNotAuthorized) {
			logrus.WithField("email", req.Email).Warn("Sign in failed: customer account on admin context")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "account is not authorized for this context"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Sign in failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("email", req.Email).Info("Sign in successful")
	return ctx.JSON(http.StatusOK, dto.SignInResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
		Profile:     dto.NewProfileResponse(result.User),
	})
}

func (c *AuthController) RefreshToken(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		logrus.Warn("Refresh token failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithField("user_id", userID).Info("Refresh token request received")
	result, err := c.authService.RefreshAccessToken(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			logrus.WithField("user_id", userID).Warn("Refresh token failed: no session")
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "no active session"})
		}
		if errors.Is(err, service.ErrTokenExpired) {
			logrus.WithField("user_id", userID).Warn("Refresh token failed: token is expired")
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "token is expired"})
		}
		if errors.Is(err, service.ErrTokenInvalid) {
			logrus.WithField("user_id", userID).Warn("Refresh token failed: token is invalid")
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "token is invalid"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Refresh token failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Refresh token successful")
	return ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

func (c *AuthController) ChangePassword(ctx echo.Context) error {
	req, err := dto.NewChangePasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind change password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Change password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		logrus.Warn("Change password failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithField("user_id", userID).Info("Change password request received")
	err = c.authService.ChangePassword(ctx.Request().Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("user_id", userID).Warn("Change password failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		if errors.Is(err, service.ErrPasswordIncorrect) {
			logrus.WithField("user_id", userID).Warn("Change password failed: old password incorrect")
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "password is not correct"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("user_id", userID).Warn("Change password failed: weak password")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Change password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Password changed")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "password changed successfully"})
}

func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	req, err := dto.NewForgotPasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind forgot password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Forgot password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Forgot password request received")
	err = c.authService.ForgotPassword(ctx.Request().Context(), req.Email, req.LangCode, adminContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrEmailNotFound) {
			logrus.WithField("email", req.Email).Warn("Forgot password failed: email not registered")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "email is not correct"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Forgot password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("email", req.Email).Info("Reset email sent")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "reset email sent"})
}

func (c *AuthController) ResetPassword(ctx echo.Context) error {
	req, err := dto.NewResetPasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind reset password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Reset password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.Info("Reset password request received")
	err = c.authService.ResetPassword(ctx.Request().Context(), req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			logrus.Warn("Reset password failed: token expired or invalid")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "reset token has expired or is invalid"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.Warn("Reset password failed: weak password")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).Error("Reset password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.Info("Password reset successful")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "password reset successfully"})
}

func (c *AuthController) Logout(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		logrus.Warn("Logout failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithField("user_id", userID).Info("Logout request received")
	if err := c.authService.Logout(ctx.Request().Context(), userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Logout failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Logout successful")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out successfully"})
}
