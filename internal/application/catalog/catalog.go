package catalog

import (
	"context"
	"time"

	"github.com/bedoax/bookstore/internal/domain/author"
	"github.com/bedoax/bookstore/internal/domain/category"
)

// CatalogUseCase 目录管理用例(作者与分类)
// 纯CRUD,没有事务与缓存诉求,直接委托仓储
type CatalogUseCase struct {
	authorRepo   author.Repository
	categoryRepo category.Repository
}

// NewCatalogUseCase 创建目录管理用例
func NewCatalogUseCase(authorRepo author.Repository, categoryRepo category.Repository) *CatalogUseCase {
	return &CatalogUseCase{
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

// AuthorRequest 作者写入请求
type AuthorRequest struct {
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
}

// CreateAuthor 新增作者
func (uc *CatalogUseCase) CreateAuthor(ctx context.Context, req AuthorRequest) (*author.Author, error) {
	now := time.Now()
	a := &author.Author{
		Name:        req.Name,
		Gender:      req.Gender,
		Age:         req.Age,
		Country:     req.Country,
		City:        req.City,
		Description: req.Description,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Website:     req.Website,
		ImagePath:   req.ImagePath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.authorRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAuthor 查询作者
func (uc *CatalogUseCase) GetAuthor(ctx context.Context, id uint) (*author.Author, error) {
	return uc.authorRepo.FindByID(ctx, id)
}

// UpdateAuthor 更新作者
func (uc *CatalogUseCase) UpdateAuthor(ctx context.Context, id uint, req AuthorRequest) (*author.Author, error) {
	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		a.Name = req.Name
	}
	if req.Gender != "" {
		a.Gender = req.Gender
	}
	if req.Age > 0 {
		a.Age = req.Age
	}
	if req.Country != "" {
		a.Country = req.Country
	}
	if req.City != "" {
		a.City = req.City
	}
	if req.Description != "" {
		a.Description = req.Description
	}
	if req.PhoneNumber != "" {
		a.PhoneNumber = req.PhoneNumber
	}
	if req.Email != "" {
		a.Email = req.Email
	}
	if req.Website != "" {
		a.Website = req.Website
	}
	if req.ImagePath != "" {
		a.ImagePath = req.ImagePath
	}
	a.UpdatedAt = time.Now()

	if err := uc.authorRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAuthor 删除作者
func (uc *CatalogUseCase) DeleteAuthor(ctx context.Context, id uint) error {
	return uc.authorRepo.Delete(ctx, id)
}

// ListAuthors 分页查询作者列表
func (uc *CatalogUseCase) ListAuthors(ctx context.Context, page, pageSize int) ([]*author.Author, int64, error) {
	return uc.authorRepo.List(ctx, page, pageSize)
}

// CreateCategory 新增分类
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, name string) (*category.Category, error) {
	now := time.Now()
	c := &category.Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategory 查询分类
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id uint) (*category.Category, error) {
	return uc.categoryRepo.FindByID(ctx, id)
}

// RenameCategory 重命名分类
func (uc *CatalogUseCase) RenameCategory(ctx context.Context, id uint, name string) (*category.Category, error) {
	c, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = name
	c.UpdatedAt = time.Now()

	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory 删除分类
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id uint) error {
	return uc.categoryRepo.Delete(ctx, id)
}

// ListCategories 查询全部分类
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*category.Category, error) {
	return uc.categoryRepo.List(ctx)
}
