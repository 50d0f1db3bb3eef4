package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bedoax/bookstore/internal/domain/author"
)

// AuthorRepository 作者仓储的MySQL实现
type AuthorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &AuthorRepository{db: db}
}

// Create 创建作者
func (r *AuthorRepository) Create(ctx context.Context, a *author.Author) error {
	model := r.toModel(a)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	a.ID = model.ID
	return nil
}

// FindByID 根据ID查找作者
func (r *AuthorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// Update 更新作者信息
func (r *AuthorRepository) Update(ctx context.Context, a *author.Author) error {
	model := r.toModel(a)
	result := getDB(ctx, r.db).Model(&AuthorModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"name":         model.Name,
			"gender":       model.Gender,
			"age":          model.Age,
			"country":      model.Country,
			"city":         model.City,
			"description":  model.Description,
			"phone_number": model.PhoneNumber,
			"email":        model.Email,
			"website":      model.Website,
			"image_path":   model.ImagePath,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// Delete 删除作者(软删除)
func (r *AuthorRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// List 分页查询作者列表
func (r *AuthorRepository) List(ctx context.Context, page, pageSize int) ([]*author.Author, int64, error) {
	query := getDB(ctx, r.db).Model(&AuthorModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []AuthorModel
	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	authors := make([]*author.Author, len(models))
	for i, model := range models {
		authors[i] = r.toEntity(&model)
	}
	return authors, total, nil
}

func (r *AuthorRepository) toModel(a *author.Author) *AuthorModel {
	return &AuthorModel{
		ID:          a.ID,
		Name:        a.Name,
		Gender:      a.Gender,
		Age:         a.Age,
		Country:     a.Country,
		City:        a.City,
		Description: a.Description,
		PhoneNumber: a.PhoneNumber,
		Email:       a.Email,
		Website:     a.Website,
		ImagePath:   a.ImagePath,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (r *AuthorRepository) toEntity(m *AuthorModel) *author.Author {
	return &author.Author{
		ID:          m.ID,
		Name:        m.Name,
		Gender:      m.Gender,
		Age:         m.Age,
		Country:     m.Country,
		City:        m.City,
		Description: m.Description,
		PhoneNumber: m.PhoneNumber,
		Email:       m.Email,
		Website:     m.Website,
		ImagePath:   m.ImagePath,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
