package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bedoax/bookstore/internal/domain/review"
)

// ReviewRepository 评论仓储的MySQL实现
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &ReviewRepository{db: db}
}

// Create 创建评论
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := r.toModel(rv)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	rv.ID = model.ID
	return nil
}

// FindByID 根据ID查找评论
func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// Update 更新评论(内容或管理员回复)
func (r *ReviewRepository) Update(ctx context.Context, rv *review.Review) error {
	model := r.toModel(rv)
	result := getDB(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"comment":       model.Comment,
			"rating":        model.Rating,
			"response":      model.Response,
			"response_date": model.ResponseDate,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// Delete 删除评论(软删除)
func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// ListByBookID 查询某本书的评论(分页,按创建时间倒序)
func (r *ReviewRepository) ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*review.Review, int64, error) {
	query := getDB(ctx, r.db).Model(&ReviewModel{}).Where("book_id = ?", bookID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ReviewModel
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	reviews := make([]*review.Review, len(models))
	for i, model := range models {
		reviews[i] = r.toEntity(&model)
	}
	return reviews, total, nil
}

// IncrLikes 点赞/点踩计数(原子UPDATE,避免读-改-写丢失更新)
func (r *ReviewRepository) IncrLikes(ctx context.Context, id uint, likes, dislikes int) error {
	result := getDB(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"likes":    gorm.Expr("likes + ?", likes),
			"dislikes": gorm.Expr("dislikes + ?", dislikes),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) toModel(rv *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:           rv.ID,
		BookID:       rv.BookID,
		CustomerID:   rv.CustomerID,
		Comment:      rv.Comment,
		Rating:       rv.Rating,
		Likes:        rv.Likes,
		Dislikes:     rv.Dislikes,
		Response:     rv.Response,
		ResponseDate: rv.ResponseDate,
		CreatedAt:    rv.CreatedAt,
		UpdatedAt:    rv.UpdatedAt,
	}
}

func (r *ReviewRepository) toEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:           m.ID,
		BookID:       m.BookID,
		CustomerID:   m.CustomerID,
		Comment:      m.Comment,
		Rating:       m.Rating,
		Likes:        m.Likes,
		Dislikes:     m.Dislikes,
		Response:     m.Response,
		ResponseDate: m.ResponseDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
