package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bedoax/bookstore/internal/domain/book"
)

// BookCache 图书缓存(Cache-Aside旁路缓存)
//
// 教学要点：
// 1. 先查缓存，未命中再查数据库，查到后回填缓存
// 2. 缓存一致性：更新/删除图书后删除缓存，而不是更新缓存
//    （删除简单可靠，并发更新缓存会出现数据不一致）
// 3. 库存、余额这类购书事务内的数据绝不走缓存，只缓存展示性读
type BookCache struct {
	client    *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, detailTTL, listTTL time.Duration) *BookCache {
	return &BookCache{
		client:    client,
		detailTTL: detailTTL,
		listTTL:   listTTL,
	}
}

// GetDetail 获取图书详情缓存
// 缓存未命中返回(nil, nil)，调用方需要查询数据库
func (c *BookCache) GetDetail(ctx context.Context, bookID uint) (*book.Book, error) {
	val, err := c.client.Get(ctx, c.detailKey(bookID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}

	var b book.Book
	if err := json.Unmarshal([]byte(val), &b); err != nil {
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}
	return &b, nil
}

// SetDetail 设置图书详情缓存
func (c *BookCache) SetDetail(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	if err := c.client.Set(ctx, c.detailKey(b.ID), val, c.detailTTL).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// DeleteDetail 删除图书详情缓存
// 图书更新、改价、删除时调用
func (c *BookCache) DeleteDetail(ctx context.Context, bookID uint) error {
	if err := c.client.Del(ctx, c.detailKey(bookID)).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// listResult 列表缓存的序列化载体
type listResult struct {
	Books []*book.Book `json:"books"`
	Total int64        `json:"total"`
}

// GetList 获取图书列表缓存
// 缓存未命中返回(nil, 0, nil)
func (c *BookCache) GetList(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	val, err := c.client.Get(ctx, c.listKey(params)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("获取缓存失败: %w", err)
	}

	var result listResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, 0, fmt.Errorf("反序列化失败: %w", err)
	}
	return result.Books, result.Total, nil
}

// SetList 设置图书列表缓存
func (c *BookCache) SetList(ctx context.Context, params book.ListParams, books []*book.Book, total int64) error {
	val, err := json.Marshal(listResult{Books: books, Total: total})
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	if err := c.client.Set(ctx, c.listKey(params), val, c.listTTL).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// InvalidateLists 删除所有列表缓存
// 发布新书、更新图书、删除图书时调用
// 使用SCAN遍历(不阻塞)，UNLINK异步删除
func (c *BookCache) InvalidateLists(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "book:list:*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描缓存key失败: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("删除缓存失败: %w", err)
		}
	}
	return nil
}

// detailKey 图书详情缓存key
// 格式：book:detail:{book_id}
func (c *BookCache) detailKey(bookID uint) string {
	return fmt.Sprintf("book:detail:%d", bookID)
}

// listKey 图书列表缓存key
// Key包含全部查询参数，不同的查询不会互相污染
// 格式：book:list:{page}:{pageSize}:{keyword}:{categoryID}:{authorID}:{sortBy}
func (c *BookCache) listKey(p book.ListParams) string {
	return fmt.Sprintf("book:list:%d:%d:%s:%d:%d:%s",
		p.Page, p.PageSize, p.Keyword, p.CategoryID, p.AuthorID, p.SortBy)
}
