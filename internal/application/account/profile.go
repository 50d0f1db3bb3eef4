package account

import (
	"context"
	"fmt"

	"github.com/bedoax/bookstore/internal/domain/account"
)

// formatPrice 格式化金额(分→元)
func formatPrice(fen int64) string {
	return fmt.Sprintf("%d.%02d", fen/100, fen%100)
}

// ProfileUseCase 客户资料用例
// 查看/修改资料、充值、管理员侧的客户管理
type ProfileUseCase struct {
	customerRepo account.CustomerRepository
}

// NewProfileUseCase 创建资料用例
func NewProfileUseCase(customerRepo account.CustomerRepository) *ProfileUseCase {
	return &ProfileUseCase{customerRepo: customerRepo}
}

// CustomerInfo 客户信息DTO
// 不携带密码字段,余额同时给分和元两种表示
type CustomerInfo struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Balance     int64  `json:"balance"`
	BalanceYuan string `json:"balance_yuan"`
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	Description string `json:"description"`
}

func toCustomerInfo(c *account.Customer) *CustomerInfo {
	return &CustomerInfo{
		ID:          c.ID,
		Username:    c.Username,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Balance:     c.Balance,
		BalanceYuan: formatPrice(c.Balance),
		Gender:      c.Gender,
		Age:         c.Age,
		Country:     c.Country,
		City:        c.City,
		Street:      c.Street,
		Description: c.Description,
	}
}

// Get 查询客户资料
func (uc *ProfileUseCase) Get(ctx context.Context, customerID uint) (*CustomerInfo, error) {
	customer, err := uc.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toCustomerInfo(customer), nil
}

// UpdateRequest 资料更新请求
// 零值字段不修改
type UpdateRequest struct {
	Name        string
	PhoneNumber string
	Email       string
	Gender      string
	Country     string
	City        string
	Street      string
	Age         int
}

// Update 更新客户资料
func (uc *ProfileUseCase) Update(ctx context.Context, customerID uint, req UpdateRequest) (*CustomerInfo, error) {
	customer, err := uc.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.UpdateProfile(req.Name, req.PhoneNumber, req.Email, req.Gender,
		req.Country, req.City, req.Street, req.Age)

	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerInfo(customer), nil
}

// TopUp 充值(管理员代客充值)
// amount单位为分,原子Credit,不经过读-改-写
func (uc *ProfileUseCase) TopUp(ctx context.Context, customerID uint, amount int64) (*CustomerInfo, error) {
	if err := uc.customerRepo.Credit(ctx, customerID, amount); err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toCustomerInfo(customer), nil
}

// List 分页查询客户列表(管理员)
func (uc *ProfileUseCase) List(ctx context.Context, page, pageSize int) ([]*CustomerInfo, int64, error) {
	customers, total, err := uc.customerRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*CustomerInfo, len(customers))
	for i, c := range customers {
		infos[i] = toCustomerInfo(c)
	}
	return infos, total, nil
}

// Delete 删除客户(管理员)
func (uc *ProfileUseCase) Delete(ctx context.Context, customerID uint) error {
	return uc.customerRepo.Delete(ctx, customerID)
}
