package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userSelectColumns = `id, email, password_hash, role, full_name, phone, gender, birthday,
		       reset_token_hash, reset_token_expires_at, created_at, updated_at`

func scanUser(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.FullName,
		&user.Phone,
		&user.Gender,
		&user.Birthday,
		&user.ResetTokenHash,
		&user.ResetTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, full_name, phone, gender, birthday, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Phone,
		user.Gender,
		user.Birthday,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users WHERE email = ?
	`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users WHERE id = ?
	`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// FindByResetTokenHash resolves an account holding an unexpired reset ticket
// whose stored digest matches. Expired and unknown digests both come back nil.
func (r *UserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users WHERE reset_token_hash = ? AND reset_token_expires_at > ?
	`
	return scanUser(r.db.QueryRowContext(ctx, query, tokenHash, now))
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			email = ?,
			password_hash = ?,
			role = ?,
			full_name = ?,
			phone = ?,
			gender = ?,
			birthday = ?,
			reset_token_hash = ?,
			reset_token_expires_at = ?,
			updated_at = ?
		WHERE id = ?
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Phone,
		user.Gender,
		user.Birthday,
		user.ResetTokenHash,
		user.ResetTokenExpiresAt,
		user.UpdatedAt,
		user.ID,
	)
	return err
}

type RefreshSessionRepository struct {
	db DBTX
}

func NewRefreshSessionRepository(db DBTX) *RefreshSessionRepository {
	return &RefreshSessionRepository{db: db}
}

// Upsert creates the session row for a user or overwrites its token.
// user_id carries a unique key, so concurrent sign-ins resolve to last writer wins.
func (r *RefreshSessionRepository) Upsert(ctx context.Context, session *entity.RefreshSession) error {
	query := `
		INSERT INTO refresh_sessions (user_id, token, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token), updated_at = VALUES(updated_at)
	`
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		session.UserID,
		session.Token,
		session.CreatedAt,
		session.UpdatedAt,
	)
	return err
}

func (r *RefreshSessionRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.RefreshSession, error) {
	query := `
		SELECT id, user_id, token, created_at, updated_at
		FROM refresh_sessions WHERE user_id = ?
	`
	session := &entity.RefreshSession{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *RefreshSessionRepository) DeleteByUserID(ctx context.Context, userID uint64) error {
	query := `DELETE FROM refresh_sessions WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

type UserPermissionRepository struct {
	db DBTX
}

func NewUserPermissionRepository(db DBTX) *UserPermissionRepository {
	return &UserPermissionRepository{db: db}
}

func (r *UserPermissionRepository) Create(ctx context.Context, permission *entity.UserPermission) error {
	query := `
		INSERT INTO user_permissions (user_id, can_create, can_update, can_remove, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	permission.CreatedAt = now
	permission.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query,
		permission.UserID,
		permission.Create,
		permission.Update,
		permission.Remove,
		permission.CreatedAt,
		permission.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	permission.ID = uint64(id)
	return nil
}

func (r *UserPermissionRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.UserPermission, error) {
	query := `
		SELECT id, user_id, can_create, can_update, can_remove, created_at, updated_at
		FROM user_permissions WHERE user_id = ?
	`
	permission := &entity.UserPermission{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&permission.ID,
		&permission.UserID,
		&permission.Create,
		&permission.Update,
		&permission.Remove,
		&permission.CreatedAt,
		&permission.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return permission, nil
}
