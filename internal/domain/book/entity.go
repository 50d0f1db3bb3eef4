package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书的核心属性
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. 书名作为购书流程的业务查找键(不区分大小写,数据库层保证唯一性)
// 4. AuthorID/CategoryID关联作者与分类聚合(只保存ID,避免跨聚合引用)
type Book struct {
	ID            uint
	Title         string // 书名(购书时的查找键,不区分大小写)
	AuthorID      uint   // 作者ID(关联Author表)
	CategoryID    uint   // 分类ID(关联Category表)
	ISBN          string // ISBN号(国际标准书号)
	Description   string // 图书描述
	Price         int64  // 价格(单位:分,1元=100分)
	Stock         int    // 库存数量
	PublishedDate time.Time
	Publisher     string  // 出版社
	Language      string  // 语言
	Pages         int     // 页数
	Rating        float64 // 综合评分(0-5)
	ImagePath     string  // 封面图片路径
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建新图书(工厂方法)
// 业务规则:价格必须>0,库存必须>=0(由Service层先校验)
func NewBook(title string, authorID, categoryID uint, isbn, description string, price int64, stock int, publishedDate time.Time, publisher, language string, pages int) *Book {
	now := time.Now()
	return &Book{
		Title:         title,
		AuthorID:      authorID,
		CategoryID:    categoryID,
		ISBN:          isbn,
		Description:   description,
		Price:         price,
		Stock:         stock,
		PublishedDate: publishedDate,
		Publisher:     publisher,
		Language:      language,
		Pages:         pages,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:价格必须>0
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// DecrStock 扣减库存(用于购书)
// 业务规则:扣减后库存不能为负数
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存(用于补货)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新图书基本信息
// 空字符串表示不修改对应字段
func (b *Book) UpdateInfo(description, publisher, language string) {
	if description != "" {
		b.Description = description
	}
	if publisher != "" {
		b.Publisher = publisher
	}
	if language != "" {
		b.Language = language
	}
	b.UpdatedAt = time.Now()
}

// LineTotal 计算purchaseQuantity本书的金额(分)
func (b *Book) LineTotal(quantity int) int64 {
	return b.Price * int64(quantity)
}
