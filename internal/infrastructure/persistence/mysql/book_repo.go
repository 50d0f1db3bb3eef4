package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bedoax/bookstore/internal/domain/book"
)

// BookRepository 图书仓储的MySQL实现
// 教学要点：
// 1. 实现domain层定义的book.Repository接口
// 2. 负责领域实体(book.Book)和数据模型(BookModel)之间的转换
// 3. 所有方法通过getDB(ctx)获取连接,自动支持事务
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &BookRepository{db: db}
}

// Create 创建图书
func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	model := r.toModel(b)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return err
	}
	// 回填数据库生成的ID
	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *BookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// FindByTitle 根据书名查找图书
// 使用LOWER()做不区分大小写的精确匹配,不依赖数据库排序规则
func (r *BookRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("LOWER(title) = LOWER(?)", title).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.NewErrBookNotFound(title)
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// Update 更新图书信息
func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	model := r.toModel(b)
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":          model.Title,
			"author_id":      model.AuthorID,
			"category_id":    model.CategoryID,
			"isbn":           model.ISBN,
			"description":    model.Description,
			"price":          model.Price,
			"published_date": model.PublishedDate,
			"publisher":      model.Publisher,
			"language":       model.Language,
			"pages":          model.Pages,
			"rating":         model.Rating,
			"image_path":     model.ImagePath,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrTitleDuplicate
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Delete 删除图书(软删除)
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询图书列表
func (r *BookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	query := getDB(ctx, r.db).Model(&BookModel{})

	// 条件过滤
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR publisher LIKE ?", keyword, keyword)
	}
	if params.CategoryID > 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.AuthorID > 0 {
		query = query.Where("author_id = ?", params.AuthorID)
	}

	// 查询总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序
	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	// 分页查询
	var models []BookModel
	offset := (params.Page - 1) * params.PageSize
	err := query.Offset(offset).Limit(params.PageSize).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i, model := range models {
		books[i] = r.toEntity(&model)
	}

	return books, total, nil
}

// LockByTitle 悲观锁查询图书
// SELECT ... FOR UPDATE,必须在事务中调用
// 购书流程通过它锁定库存行,防止并发超卖
func (r *BookRepository) LockByTitle(ctx context.Context, title string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("LOWER(title) = LOWER(?)", title).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.NewErrBookNotFound(title)
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// UpdateStock 更新库存(原子操作)
// 使用带条件的UPDATE语句: UPDATE books SET stock = stock + ? WHERE id = ? AND stock + ? >= 0
// 即使上层已经校验过库存,这条语句仍是防超卖的最终防线
func (r *BookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 区分"图书不存在"和"库存不足"
		// 这里的查询失败必须原样上抛,否则数据库故障会被误报成业务错误
		var count int64
		if err := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return book.ErrBookNotFound
		}
		return book.ErrInsufficientStock
	}
	return nil
}

// toModel 领域实体 -> 数据模型
func (r *BookRepository) toModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		CategoryID:    b.CategoryID,
		ISBN:          b.ISBN,
		Description:   b.Description,
		Price:         b.Price,
		Stock:         b.Stock,
		PublishedDate: b.PublishedDate,
		Publisher:     b.Publisher,
		Language:      b.Language,
		Pages:         b.Pages,
		Rating:        b.Rating,
		ImagePath:     b.ImagePath,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// toEntity 数据模型 -> 领域实体
func (r *BookRepository) toEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:            m.ID,
		Title:         m.Title,
		AuthorID:      m.AuthorID,
		CategoryID:    m.CategoryID,
		ISBN:          m.ISBN,
		Description:   m.Description,
		Price:         m.Price,
		Stock:         m.Stock,
		PublishedDate: m.PublishedDate,
		Publisher:     m.Publisher,
		Language:      m.Language,
		Pages:         m.Pages,
		Rating:        m.Rating,
		ImagePath:     m.ImagePath,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
