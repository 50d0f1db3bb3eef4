package book

import (
	"context"
	"log"

	"github.com/bedoax/bookstore/internal/domain/book"
	"github.com/bedoax/bookstore/internal/infrastructure/persistence/redis"
)

// BrowseBooksUseCase 图书浏览用例(公开接口)
// Cache-Aside读路径:
// 1. 先查Redis缓存
// 2. 未命中查数据库
// 3. 回填缓存(失败只记日志,不影响响应)
type BrowseBooksUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewBrowseBooksUseCase 创建图书浏览用例
func NewBrowseBooksUseCase(bookService book.Service, cache *redis.BookCache) *BrowseBooksUseCase {
	return &BrowseBooksUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// GetByID 查询图书详情
func (uc *BrowseBooksUseCase) GetByID(ctx context.Context, bookID uint) (*BookInfo, error) {
	// 1. 查缓存
	cached, err := uc.cache.GetDetail(ctx, bookID)
	if err != nil {
		// 缓存故障降级为直查数据库
		log.Printf("读取图书详情缓存失败: book_id=%d, err=%v", bookID, err)
	}
	if cached != nil {
		return toBookInfo(cached), nil
	}

	// 2. 查数据库
	b, err := uc.bookService.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	if err := uc.cache.SetDetail(ctx, b); err != nil {
		log.Printf("回填图书详情缓存失败: book_id=%d, err=%v", bookID, err)
	}

	return toBookInfo(b), nil
}

// GetByTitle 按书名查询图书(不区分大小写)
// 书名查询不走缓存:购书前的确认读,必须看到最新库存
func (uc *BrowseBooksUseCase) GetByTitle(ctx context.Context, title string) (*BookInfo, error) {
	b, err := uc.bookService.GetBookByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return toBookInfo(b), nil
}

// List 分页查询图书列表
func (uc *BrowseBooksUseCase) List(ctx context.Context, params book.ListParams) ([]*BookInfo, int64, error) {
	// 1. 查缓存
	cached, total, err := uc.cache.GetList(ctx, params)
	if err != nil {
		log.Printf("读取图书列表缓存失败: err=%v", err)
	}
	if cached != nil {
		return toBookInfos(cached), total, nil
	}

	// 2. 查数据库
	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	// 3. 回填缓存
	if err := uc.cache.SetList(ctx, params, books, total); err != nil {
		log.Printf("回填图书列表缓存失败: err=%v", err)
	}

	return toBookInfos(books), total, nil
}

func toBookInfos(books []*book.Book) []*BookInfo {
	infos := make([]*BookInfo, len(books))
	for i, b := range books {
		infos[i] = toBookInfo(b)
	}
	return infos
}
