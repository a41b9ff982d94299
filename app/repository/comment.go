package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
)

type CommentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (product_id, customer_id, parent_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, query,
		comment.ProductID,
		comment.CustomerID,
		comment.ParentID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = uint64(id)
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*entity.Comment, error) {
	query := `
		SELECT id, product_id, customer_id, parent_id, content, created_at, updated_at
		FROM comments WHERE id = ?
	`
	comment := &entity.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.ProductID,
		&comment.CustomerID,
		&comment.ParentID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) ListByProductID(ctx context.Context, productID uint64, q ListQuery) ([]*entity.Comment, error) {
	query := `
		SELECT id, product_id, customer_id, parent_id, content, created_at, updated_at
		FROM comments
		WHERE product_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	limit, offset := q.limitOffset()
	rows, err := r.db.QueryContext(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		comment := &entity.Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.ProductID,
			&comment.CustomerID,
			&comment.ParentID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	query := `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`
	comment.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, comment.Content, comment.UpdatedAt, comment.ID)
	return err
}

func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM comments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
