package account

import (
	"context"

	"github.com/bedoax/bookstore/internal/domain/account"
)

// RegisterCustomerUseCase 客户注册用例
// 注册逻辑(用户名查重、密码强度、bcrypt加密)都在领域服务中,
// 应用层只做DTO转换
type RegisterCustomerUseCase struct {
	accountService account.Service
}

// NewRegisterCustomerUseCase 创建注册用例
func NewRegisterCustomerUseCase(accountService account.Service) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{accountService: accountService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Password string
	Name     string
	Email    string
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	CustomerID uint   `json:"customer_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
}

// Execute 执行注册
func (uc *RegisterCustomerUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	customer, err := uc.accountService.RegisterCustomer(ctx, req.Username, req.Password, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		CustomerID: customer.ID,
		Username:   customer.Username,
		Name:       customer.Name,
	}, nil
}
