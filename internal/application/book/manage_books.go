package book

import (
	"context"
	"fmt"
	"log"

	"github.com/bedoax/bookstore/internal/domain/book"
	"github.com/bedoax/bookstore/internal/infrastructure/persistence/redis"
)

// ManageBooksUseCase 图书管理用例(管理员)
// 教学要点:缓存一致性
// 所有写操作遵循"先写数据库,再删缓存":
// 删除缓存失败只记日志,下次读取时TTL兜底
type ManageBooksUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewManageBooksUseCase 创建图书管理用例
func NewManageBooksUseCase(bookService book.Service, cache *redis.BookCache) *ManageBooksUseCase {
	return &ManageBooksUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// PublishRequest 上架请求
type PublishRequest struct {
	Title       string
	AuthorID    uint
	CategoryID  uint
	ISBN        string
	Description string
	Price       int64 // 价格(分)
	Stock       int
	Publisher   string
	Language    string
	Pages       int
}

// BookInfo 图书信息DTO
type BookInfo struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	AuthorID      uint    `json:"author_id"`
	CategoryID    uint    `json:"category_id"`
	ISBN          string  `json:"isbn"`
	Description   string  `json:"description"`
	Price         int64   `json:"price"`
	PriceYuan     string  `json:"price_yuan"`
	Stock         int     `json:"stock"`
	Publisher     string  `json:"publisher"`
	Language      string  `json:"language"`
	Pages         int     `json:"pages"`
	Rating        float64 `json:"rating"`
	PublishedDate string  `json:"published_date"`
}

func toBookInfo(b *book.Book) *BookInfo {
	return &BookInfo{
		ID:            b.ID,
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		CategoryID:    b.CategoryID,
		ISBN:          b.ISBN,
		Description:   b.Description,
		Price:         b.Price,
		PriceYuan:     formatPrice(b.Price),
		Stock:         b.Stock,
		Publisher:     b.Publisher,
		Language:      b.Language,
		Pages:         b.Pages,
		Rating:        b.Rating,
		PublishedDate: b.PublishedDate.Format("2006-01-02"),
	}
}

// Publish 上架图书
func (uc *ManageBooksUseCase) Publish(ctx context.Context, req PublishRequest) (*BookInfo, error) {
	b, err := uc.bookService.PublishBook(ctx, book.PublishInput{
		Title:       req.Title,
		AuthorID:    req.AuthorID,
		CategoryID:  req.CategoryID,
		ISBN:        req.ISBN,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Publisher:   req.Publisher,
		Language:    req.Language,
		Pages:       req.Pages,
	})
	if err != nil {
		return nil, err
	}

	// 新书上架,列表缓存全部失效
	uc.invalidateLists(ctx)
	return toBookInfo(b), nil
}

// UpdateInfoRequest 更新图书信息请求
type UpdateInfoRequest struct {
	Description string
	Publisher   string
	Language    string
}

// UpdateInfo 更新图书信息
func (uc *ManageBooksUseCase) UpdateInfo(ctx context.Context, bookID uint, req UpdateInfoRequest) error {
	if err := uc.bookService.UpdateBookInfo(ctx, bookID, req.Description, req.Publisher, req.Language); err != nil {
		return err
	}
	uc.invalidateBook(ctx, bookID)
	return nil
}

// UpdatePrice 更新图书价格
func (uc *ManageBooksUseCase) UpdatePrice(ctx context.Context, bookID uint, newPrice int64) error {
	if err := uc.bookService.UpdateBookPrice(ctx, bookID, newPrice); err != nil {
		return err
	}
	uc.invalidateBook(ctx, bookID)
	return nil
}

// Restock 补充库存
// 库存不进详情缓存以外的任何缓存,列表缓存里的库存展示允许短暂滞后
func (uc *ManageBooksUseCase) Restock(ctx context.Context, bookID uint, quantity int) error {
	if err := uc.bookService.Restock(ctx, bookID, quantity); err != nil {
		return err
	}
	uc.invalidateBook(ctx, bookID)
	return nil
}

// Delete 删除图书
func (uc *ManageBooksUseCase) Delete(ctx context.Context, bookID uint) error {
	if err := uc.bookService.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	uc.invalidateBook(ctx, bookID)
	return nil
}

func (uc *ManageBooksUseCase) invalidateBook(ctx context.Context, bookID uint) {
	if err := uc.cache.DeleteDetail(ctx, bookID); err != nil {
		log.Printf("删除图书详情缓存失败: book_id=%d, err=%v", bookID, err)
	}
	uc.invalidateLists(ctx)
}

func (uc *ManageBooksUseCase) invalidateLists(ctx context.Context) {
	if err := uc.cache.InvalidateLists(ctx); err != nil {
		log.Printf("删除图书列表缓存失败: err=%v", err)
	}
}

// formatPrice 格式化价格(分→元)
func formatPrice(fen int64) string {
	return fmt.Sprintf("%d.%02d", fen/100, fen%100)
}
