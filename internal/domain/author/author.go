package author

import (
	"context"
	"time"

	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// Author 作者实体
// 目录管理的辅助聚合,只有CRUD,没有复杂业务规则,不单独设领域服务
type Author struct {
	ID          uint
	Name        string
	Gender      string
	Age         int
	Country     string
	City        string
	Description string
	PhoneNumber string
	Email       string
	Website     string
	ImagePath   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")
)

// Repository 作者仓储接口
type Repository interface {
	Create(ctx context.Context, author *Author) error
	FindByID(ctx context.Context, id uint) (*Author, error)
	Update(ctx context.Context, author *Author) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, pageSize int) ([]*Author, int64, error)
}
