package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bedoax/bookstore/internal/domain/account"
)

// CustomerRepository 客户仓储的MySQL实现
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) account.CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create 创建客户
func (r *CustomerRepository) Create(ctx context.Context, c *account.Customer) error {
	model := r.toModel(c)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return account.ErrUsernameDuplicate
		}
		return err
	}
	c.ID = model.ID
	return nil
}

// FindByID 根据ID查找客户
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*account.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrCustomerNotFound
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// FindByUsername 根据用户名查找客户
func (r *CustomerRepository) FindByUsername(ctx context.Context, username string) (*account.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrCustomerNotFound
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// Update 更新客户信息
// 不更新余额:余额变动必须走Debit/Credit的原子UPDATE
func (r *CustomerRepository) Update(ctx context.Context, c *account.Customer) error {
	result := getDB(ctx, r.db).Model(&CustomerModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":         c.Name,
			"phone_number": c.PhoneNumber,
			"email":        c.Email,
			"gender":       c.Gender,
			"age":          c.Age,
			"country":      c.Country,
			"city":         c.City,
			"street":       c.Street,
			"description":  c.Description,
			"updated_at":   c.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return account.ErrCustomerNotFound
	}
	return nil
}

// Delete 删除客户(软删除)
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CustomerModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return account.ErrCustomerNotFound
	}
	return nil
}

// List 分页查询客户列表
func (r *CustomerRepository) List(ctx context.Context, page, pageSize int) ([]*account.Customer, int64, error) {
	query := getDB(ctx, r.db).Model(&CustomerModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []CustomerModel
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	customers := make([]*account.Customer, len(models))
	for i, model := range models {
		customers[i] = r.toEntity(&model)
	}
	return customers, total, nil
}

// Debit 扣减余额(原子操作)
// UPDATE customers SET balance = balance - ? WHERE id = ? AND balance >= ?
// 带条件的UPDATE保证余额不为负,是并发扣款时的最终防线
func (r *CustomerRepository) Debit(ctx context.Context, id uint, amount int64) error {
	if amount <= 0 {
		return account.ErrInvalidAmount
	}
	result := getDB(ctx, r.db).Model(&CustomerModel{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 区分"客户不存在"和"余额不足"
		// 查询失败原样上抛,不能把数据库故障误报成业务错误
		var count int64
		if err := getDB(ctx, r.db).Model(&CustomerModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return account.ErrCustomerNotFound
		}
		return account.ErrInsufficientBalance
	}
	return nil
}

// Credit 充值余额(原子操作)
func (r *CustomerRepository) Credit(ctx context.Context, id uint, amount int64) error {
	if amount <= 0 {
		return account.ErrInvalidAmount
	}
	result := getDB(ctx, r.db).Model(&CustomerModel{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return account.ErrCustomerNotFound
	}
	return nil
}

// toModel 领域实体 -> 数据模型
func (r *CustomerRepository) toModel(c *account.Customer) *CustomerModel {
	return &CustomerModel{
		ID:          c.ID,
		Username:    c.Username,
		Password:    c.Password,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Balance:     c.Balance,
		Gender:      c.Gender,
		Age:         c.Age,
		Country:     c.Country,
		City:        c.City,
		Street:      c.Street,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// toEntity 数据模型 -> 领域实体
func (r *CustomerRepository) toEntity(m *CustomerModel) *account.Customer {
	return &account.Customer{
		ID: m.ID,
		Person: account.Person{
			Username:    m.Username,
			Password:    m.Password,
			Name:        m.Name,
			PhoneNumber: m.PhoneNumber,
			Email:       m.Email,
		},
		Balance:     m.Balance,
		Gender:      m.Gender,
		Age:         m.Age,
		Country:     m.Country,
		City:        m.City,
		Street:      m.Street,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// AdminRepository 管理员仓储的MySQL实现
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓储
func NewAdminRepository(db *gorm.DB) account.AdminRepository {
	return &AdminRepository{db: db}
}

// Create 创建管理员
func (r *AdminRepository) Create(ctx context.Context, a *account.Admin) error {
	model := &AdminModel{
		ID:          a.ID,
		Username:    a.Username,
		Password:    a.Password,
		Name:        a.Name,
		PhoneNumber: a.PhoneNumber,
		Email:       a.Email,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return account.ErrUsernameDuplicate
		}
		return err
	}
	a.ID = model.ID
	return nil
}

// FindByID 根据ID查找管理员
func (r *AdminRepository) FindByID(ctx context.Context, id uint) (*account.Admin, error) {
	var model AdminModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAdminNotFound
		}
		return nil, err
	}
	return r.adminToEntity(&model), nil
}

// FindByUsername 根据用户名查找管理员
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*account.Admin, error) {
	var model AdminModel
	err := getDB(ctx, r.db).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAdminNotFound
		}
		return nil, err
	}
	return r.adminToEntity(&model), nil
}

func (r *AdminRepository) adminToEntity(m *AdminModel) *account.Admin {
	return &account.Admin{
		ID: m.ID,
		Person: account.Person{
			Username:    m.Username,
			Password:    m.Password,
			Name:        m.Name,
			PhoneNumber: m.PhoneNumber,
			Email:       m.Email,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
