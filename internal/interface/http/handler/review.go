package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/bedoax/bookstore/internal/application/review"
	"github.com/bedoax/bookstore/internal/domain/review"
	"github.com/bedoax/bookstore/internal/interface/http/dto"
	"github.com/bedoax/bookstore/internal/interface/http/middleware"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
	"github.com/bedoax/bookstore/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	reviewUseCase *appreview.ReviewUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(reviewUseCase *appreview.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

// Post 发表评论(客户)
// @Summary      发表评论
// @Tags         评论模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PostReviewRequest true "评论信息"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Router       /reviews [post]
func (h *ReviewHandler) Post(c *gin.Context) {
	var req dto.PostReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	customerID := middleware.MustGetUserID(c)

	r, err := h.reviewUseCase.Post(c.Request.Context(), appreview.PostRequest{
		BookID:     req.BookID,
		CustomerID: customerID,
		Comment:    req.Comment,
		Rating:     req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toReviewResponse(r))
}

// ListByBook 某本书的评论
// @Summary      图书评论列表
// @Tags         评论模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /books/{id}/reviews [get]
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)

	reviews, total, err := h.reviewUseCase.ListByBook(c.Request.Context(), bookID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.ReviewResponse, len(reviews))
	for i, r := range reviews {
		list[i] = toReviewResponse(r)
	}
	response.SuccessWithPage(c, list, total, page, pageSize)
}

// Delete 删除评论(客户删自己的)
// @Summary      删除评论
// @Tags         评论模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40104无权限"
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customerID := middleware.MustGetUserID(c)

	if err := h.reviewUseCase.Delete(c.Request.Context(), id, customerID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Like 点赞
// @Summary      评论点赞
// @Tags         评论模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Success      200 {object} response.Response
// @Router       /reviews/{id}/like [post]
func (h *ReviewHandler) Like(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.reviewUseCase.Like(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Dislike 点踩
// @Summary      评论点踩
// @Tags         评论模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Success      200 {object} response.Response
// @Router       /reviews/{id}/dislike [post]
func (h *ReviewHandler) Dislike(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.reviewUseCase.Dislike(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Respond 管理员回复评论
// @Summary      回复评论
// @Tags         评论模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Param        request body dto.RespondReviewRequest true "回复内容"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Router       /admin/reviews/{id}/respond [post]
func (h *ReviewHandler) Respond(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.RespondReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	r, err := h.reviewUseCase.Respond(c.Request.Context(), id, req.Response)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toReviewResponse(r))
}

func toReviewResponse(r *review.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		CustomerID: r.CustomerID,
		Comment:    r.Comment,
		Rating:     r.Rating,
		Likes:      r.Likes,
		Dislikes:   r.Dislikes,
		Response:   r.Response,
		CreatedAt:  r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if r.ResponseDate != nil {
		resp.ResponseDate = r.ResponseDate.Format("2006-01-02 15:04:05")
	}
	return resp
}
