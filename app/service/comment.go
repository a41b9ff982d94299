package service

import (
	"context"
	"errors"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCommentForbidden = errors.New("comment does not belong to this customer")
	ErrParentNotFound   = errors.New("parent comment not found")
)

// CommentService manages product comments and replies.
type CommentService struct {
	comments *repository.CommentRepository
	products *repository.ProductRepository
}

func NewCommentService(comments *repository.CommentRepository, products *repository.ProductRepository) *CommentService {
	return &CommentService{comments: comments, products: products}
}

func (s *CommentService) ListByProduct(ctx context.Context, productID uint64, q repository.ListQuery) ([]*entity.Comment, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.comments.ListByProductID(ctx, productID, q)
}

func (s *CommentService) Get(ctx context.Context, id uint64) (*entity.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

func (s *CommentService) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	product, err := s.products.FindByID(ctx, comment.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	// Replies must point at an existing comment on the same product.
	if comment.ParentID.Valid {
		parent, err := s.comments.FindByID(ctx, uint64(comment.ParentID.Int64))
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ProductID != comment.ProductID {
			return nil, ErrParentNotFound
		}
	}

	if err = s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, customerID uint64, id uint64, content string) (*entity.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.CustomerID != customerID {
		return nil, ErrCommentForbidden
	}

	comment.Content = content
	if err = s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, customerID uint64, id uint64) error {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if comment.CustomerID != customerID {
		return ErrCommentForbidden
	}
	return s.comments.Delete(ctx, id)
}

// CommentExists backs the existence-guard middleware on comment routes.
func (s *CommentService) CommentExists(ctx context.Context, id uint64) (bool, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return comment != nil, nil
}
