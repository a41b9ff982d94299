package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/config"
)

var (
	ErrEmailExists       = errors.New("email is already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailNotFound     = errors.New("email is not correct")
	ErrPasswordIncorrect = errors.New("password is not correct")
	ErrNotAuthorized     = errors.New("account is not authorized for this context")
	ErrSessionNotFound   = errors.New("refresh session not found")
	ErrResetTokenInvalid = errors.New("reset token has expired or is invalid")
	ErrWeakPassword      = errors.New("password does not meet policy requirements")
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type refreshSessionRepository interface {
	Upsert(ctx context.Context, session *entity.RefreshSession) error
	FindByUserID(ctx context.Context, userID uint64) (*entity.RefreshSession, error)
	DeleteByUserID(ctx context.Context, userID uint64) error
}

type SignInResult struct {
	AccessToken string
	ExpiresIn   int64
	User        *entity.User
}

type RefreshResult struct {
	AccessToken string
	ExpiresIn   int64
}

type AuthService interface {
	SignUp(ctx context.Context, email, password, phone string) (*entity.User, error)
	SignIn(ctx context.Context, email, password string, adminContext bool) (*SignInResult, error)
	RefreshAccessToken(ctx context.Context, userID uint64) (*RefreshResult, error)
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email, langCode string, adminContext bool) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Logout(ctx context.Context, userID uint64) error
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateAccessTokenAllowExpired(tokenString string) (*Claims, error)
}

type authService struct {
	db       *sql.DB
	users    userRepository
	sessions refreshSessionRepository
	hasher   *PasswordHasher
	tokens   *TokenIssuer
	resets   *ResetTicketSource
	mailer   Mailer
	cfg      *config.Config
}

func NewAuthService(
	db *sql.DB,
	users userRepository,
	sessions refreshSessionRepository,
	hasher *PasswordHasher,
	tokens *TokenIssuer,
	resets *ResetTicketSource,
	mailer Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		db:       db,
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		resets:   resets,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, phone string) (*entity.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	if err = s.cfg.PasswordPolicy.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if phone != "" {
		user.Phone = sql.NullString{String: phone, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txUserRepo := repository.NewUserRepository(tx)
	if err = txUserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// New accounts start with every back-office permission disabled.
	txPermissionRepo := repository.NewUserPermissionRepository(tx)
	permission := &entity.UserPermission{UserID: user.ID}
	if err = txPermissionRepo.Create(ctx, permission); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string, adminContext bool) (*SignInResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrPasswordIncorrect
	}

	if adminContext && user.Role == entity.RoleCustomer {
		return nil, ErrNotAuthorized
	}

	accessToken, expiresIn, err := s.tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	session := &entity.RefreshSession{
		UserID: user.ID,
		Token:  refreshToken,
	}
	if err = s.sessions.Upsert(ctx, session); err != nil {
		return nil, err
	}

	return &SignInResult{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
		User:        user,
	}, nil
}

func (s *authService) RefreshAccessToken(ctx context.Context, userID uint64) (*RefreshResult, error) {
	session, err := s.sessions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	// Claims come from the stored refresh token itself, not a re-read of the
	// user row.
	claims, err := s.tokens.VerifyRefreshToken(session.Token)
	if err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := s.tokens.IssueAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return ErrPasswordIncorrect
	}

	if err = s.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = passwordHash
	return s.users.Update(ctx, user)
}

func (s *authService) ForgotPassword(ctx context.Context, email, langCode string, adminContext bool) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}

	ticket, err := s.resets.Generate()
	if err != nil {
		return err
	}

	user.ResetTokenHash = sql.NullString{String: ticket.Digest, Valid: true}
	user.ResetTokenExpiresAt = sql.NullTime{Time: ticket.ExpiresAt, Valid: true}
	if err = s.users.Update(ctx, user); err != nil {
		return err
	}

	baseURL := s.cfg.CustomerOrigin
	if adminContext {
		baseURL = s.cfg.AdminOrigin
	}
	resetURL := fmt.Sprintf("%s/auth/resetPassword/%s?langCode=%s", baseURL, ticket.Plaintext, langCode)

	msg := MailMessage{
		To:      user.Email,
		Subject: resetPasswordSubject(langCode),
		HTML:    resetPasswordBody(langCode, user.FullName.String, resetURL),
	}
	if err = s.mailer.Send(ctx, msg); err != nil {
		// A failed send must not leave a valid dangling ticket behind.
		user.ResetTokenHash = sql.NullString{Valid: false}
		user.ResetTokenExpiresAt = sql.NullTime{Valid: false}
		if clearErr := s.users.Update(ctx, user); clearErr != nil {
			logrus.WithError(clearErr).WithField("user_id", user.ID).Error("failed to clear reset ticket after send failure")
		}
		return fmt.Errorf("send reset email: %w", err)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	digest := s.resets.Digest(token)
	user, err := s.users.FindByResetTokenHash(ctx, digest, time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		return ErrResetTokenInvalid
	}

	if err = s.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = passwordHash
	user.ResetTokenHash = sql.NullString{Valid: false}
	user.ResetTokenExpiresAt = sql.NullTime{Valid: false}
	return s.users.Update(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID uint64) error {
	// Deleting an absent session is still success, so logout stays idempotent.
	return s.sessions.DeleteByUserID(ctx, userID)
}

func (s *authService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.VerifyAccessToken(tokenString)
}

func (s *authService) ValidateAccessTokenAllowExpired(tokenString string) (*Claims, error) {
	return s.tokens.VerifyAccessTokenAllowExpired(tokenString)
}
