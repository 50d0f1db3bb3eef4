package review

import (
	"context"

	"github.com/bedoax/bookstore/internal/domain/book"
	"github.com/bedoax/bookstore/internal/domain/review"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// ReviewUseCase 图书评论用例
// 客户发表/修改/删除自己的评论,管理员回复评论,任何人点赞点踩
type ReviewUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
}

// NewReviewUseCase 创建评论用例
func NewReviewUseCase(reviewRepo review.Repository, bookRepo book.Repository) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

// PostRequest 发表评论请求
type PostRequest struct {
	BookID     uint
	CustomerID uint
	Comment    string
	Rating     int // 0-5
}

// Post 发表评论
// 先校验图书存在,避免给不存在的书挂评论
func (uc *ReviewUseCase) Post(ctx context.Context, req PostRequest) (*review.Review, error) {
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	r, err := review.NewReview(req.BookID, req.CustomerID, req.Comment, req.Rating)
	if err != nil {
		return nil, err
	}

	if err := uc.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Get 查询评论
func (uc *ReviewUseCase) Get(ctx context.Context, id uint) (*review.Review, error) {
	return uc.reviewRepo.FindByID(ctx, id)
}

// Delete 删除评论
// 只能删自己的评论(管理员走单独的路由权限)
func (uc *ReviewUseCase) Delete(ctx context.Context, id, customerID uint) error {
	r, err := uc.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.CustomerID != customerID {
		return apperrors.ErrForbidden
	}
	return uc.reviewRepo.Delete(ctx, id)
}

// Respond 管理员回复评论
func (uc *ReviewUseCase) Respond(ctx context.Context, id uint, response string) (*review.Review, error) {
	r, err := uc.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Respond(response)

	if err := uc.reviewRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Like 点赞
func (uc *ReviewUseCase) Like(ctx context.Context, id uint) error {
	return uc.reviewRepo.IncrLikes(ctx, id, 1, 0)
}

// Dislike 点踩
func (uc *ReviewUseCase) Dislike(ctx context.Context, id uint) error {
	return uc.reviewRepo.IncrLikes(ctx, id, 0, 1)
}

// ListByBook 查询某本书的评论(分页)
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uint, page, pageSize int) ([]*review.Review, int64, error) {
	return uc.reviewRepo.ListByBookID(ctx, bookID, page, pageSize)
}
