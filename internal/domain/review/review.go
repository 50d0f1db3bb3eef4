package review

import (
	"context"
	"time"

	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// Review 图书评论实体
// 设计说明:
// 1. 只保存BookID/CustomerID(避免跨聚合引用)
// 2. Response是管理员回复,回复时间单独记录
type Review struct {
	ID           uint
	BookID       uint
	CustomerID   uint
	Comment      string // 评论内容
	Rating       int    // 评分(0-5)
	Likes        int    // 点赞数
	Dislikes     int    // 点踩数
	Response     string // 管理员回复
	ResponseDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// 评论领域错误定义
var (
	// ErrReviewNotFound 评论不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评论不存在")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在0-5之间")
)

// NewReview 创建新评论(工厂方法)
func NewReview(bookID, customerID uint, comment string, rating int) (*Review, error) {
	if rating < 0 || rating > 5 {
		return nil, ErrInvalidRating
	}
	now := time.Now()
	return &Review{
		BookID:     bookID,
		CustomerID: customerID,
		Comment:    comment,
		Rating:     rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Respond 管理员回复评论(领域行为)
func (r *Review) Respond(response string) {
	now := time.Now()
	r.Response = response
	r.ResponseDate = &now
	r.UpdatedAt = now
}

// Repository 评论仓储接口
type Repository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uint) error

	// ListByBookID 查询某本书的评论(分页)
	ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*Review, int64, error)

	// IncrLikes 点赞/点踩计数(原子操作,likes/dislikes为增量)
	IncrLikes(ctx context.Context, id uint, likes, dislikes int) error
}
