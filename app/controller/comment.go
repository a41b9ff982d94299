package controller

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	dto "github.com/freshmarket/commerce-api/app/dto/http"
	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type CommentController struct {
	commentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

func (c *CommentController) ListByProduct(ctx echo.Context) error {
	productID, err := strconv.ParseUint(ctx.QueryParam("product_id"), 10, 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product_id"})
	}

	comments, err := c.commentService.ListByProduct(ctx.Request().Context(), productID, listQueryFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "product not found"})
		}
		logrus.WithError(err).WithField("product_id", productID).Error("List comments failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewCommentListResponse(comments))
}

func (c *CommentController) Create(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	req, err := dto.NewCreateCommentRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	comment := &entity.Comment{
		ProductID:  req.ProductID,
		CustomerID: userID,
		Content:    req.Content,
	}
	if req.ParentID != nil {
		comment.ParentID = sql.NullInt64{Int64: *req.ParentID, Valid: true}
	}

	comment, err = c.commentService.Create(ctx.Request().Context(), comment)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "product not found"})
		}
		if errors.Is(err, service.ErrParentNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "parent comment not found"})
		}
		logrus.WithError(err).WithField("product_id", req.ProductID).Error("Create comment failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"comment_id": comment.ID,
		"product_id": comment.ProductID,
	}).Info("Comment created")
	return ctx.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

func (c *CommentController) Update(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid comment id"})
	}

	req, err := dto.NewUpdateCommentRequestFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	comment, err := c.commentService.Update(ctx.Request().Context(), userID, id, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "comment not found"})
		}
		if errors.Is(err, service.ErrCommentForbidden) {
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "comment does not belong to this customer"})
		}
		logrus.WithError(err).WithField("comment_id", id).Error("Update comment failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

func (c *CommentController) Delete(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid comment id"})
	}

	if err = c.commentService.Delete(ctx.Request().Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "comment not found"})
		}
		if errors.Is(err, service.ErrCommentForbidden) {
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "comment does not belong to this customer"})
		}
		logrus.WithError(err).WithField("comment_id", id).Error("Delete comment failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("comment_id", id).Info("Comment deleted")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "comment deleted"})
}
