package book

import (
	"context"
	"regexp"
	"time"

	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// PublishBook 发布图书(上架)
	// 业务规则:
	// - ISBN格式必须合法(10位或13位数字)
	// - 价格必须在1-1000000分之间
	// - 库存必须>=0
	// - 书名不能重复(购书按书名查找,书名是业务唯一键)
	PublishBook(ctx context.Context, input PublishInput) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByTitle 根据书名获取图书(不区分大小写)
	GetBookByTitle(ctx context.Context, title string) (*Book, error)

	// UpdateBookInfo 更新图书信息
	UpdateBookInfo(ctx context.Context, id uint, description, publisher, language string) error

	// UpdateBookPrice 更新图书价格
	UpdateBookPrice(ctx context.Context, id uint, newPrice int64) error

	// Restock 补充库存
	Restock(ctx context.Context, id uint, quantity int) error

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	// 公开接口,不需要权限校验
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// PublishInput 上架输入参数
type PublishInput struct {
	Title       string
	AuthorID    uint
	CategoryID  uint
	ISBN        string
	Description string
	Price       int64
	Stock       int
	Publisher   string
	Language    string
	Pages       int
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// PublishBook 发布图书
func (s *service) PublishBook(ctx context.Context, input PublishInput) (*Book, error) {
	// 1. ISBN格式校验
	if !isValidISBN(input.ISBN) {
		return nil, ErrInvalidISBN
	}

	// 2. 价格范围校验(1分-10000元)
	if input.Price < 1 || input.Price > 1000000 {
		return nil, ErrInvalidPrice
	}

	// 3. 库存校验
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	// 4. 检查书名是否已存在
	existing, err := s.repo.FindByTitle(ctx, input.Title)
	if err == nil && existing != nil {
		return nil, ErrTitleDuplicate
	}
	// "图书不存在"是期望结果,其余错误原样返回
	if err != nil && apperrors.GetAppError(err).Code != apperrors.ErrCodeBookNotFound {
		return nil, err
	}

	// 5. 创建图书实体
	b := NewBook(input.Title, input.AuthorID, input.CategoryID, input.ISBN,
		input.Description, input.Price, input.Stock,
		time.Now(), input.Publisher, input.Language, input.Pages)

	// 6. 持久化(数据库唯一索引兜底书名重复)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByTitle 根据书名获取图书
func (s *service) GetBookByTitle(ctx context.Context, title string) (*Book, error) {
	return s.repo.FindByTitle(ctx, title)
}

// UpdateBookInfo 更新图书信息
func (s *service) UpdateBookInfo(ctx context.Context, id uint, description, publisher, language string) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	b.UpdateInfo(description, publisher, language)

	return s.repo.Update(ctx, b)
}

// UpdateBookPrice 更新图书价格
func (s *service) UpdateBookPrice(ctx context.Context, id uint, newPrice int64) error {
	// 1. 价格范围校验
	if newPrice < 1 || newPrice > 1000000 {
		return ErrInvalidPrice
	}

	// 2. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 3. 更新价格
	if err := b.UpdatePrice(newPrice); err != nil {
		return err
	}

	// 4. 持久化
	return s.repo.Update(ctx, b)
}

// Restock 补充库存
// 使用原子UpdateStock而非读改写,与购书扣减走同一条路径
func (s *service) Restock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.UpdateStock(ctx, id, quantity)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

// isValidISBN 校验ISBN格式
// 支持:
// - ISBN-10: 10位数字
// - ISBN-13: 13位数字
// 简化实现:只检查位数和是否全为数字(生产环境应校验校验位)
func isValidISBN(isbn string) bool {
	// 去除可能的分隔符(如978-7-115-42802-8 → 9787115428028)
	re := regexp.MustCompile(`[^0-9Xx]`)
	cleanISBN := re.ReplaceAllString(isbn, "")

	length := len(cleanISBN)
	return length == 10 || length == 13
}
