package category

import (
	"context"
	"time"

	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// Category 图书分类实体
// 与作者一样属于目录辅助聚合,仅CRUD
type Category struct {
	ID        uint
	Name      string // 分类名(唯一)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// 分类领域错误定义
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrNameDuplicate 分类名已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名已存在")
)

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*Category, error)
}
