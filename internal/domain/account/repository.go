package account

import (
	"context"
)

// CustomerRepository 客户仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Debit是购书流程的余额扣减入口,必须保证原子性
type CustomerRepository interface {
	// Create 创建客户
	Create(ctx context.Context, customer *Customer) error

	// FindByID 根据ID查找客户
	FindByID(ctx context.Context, id uint) (*Customer, error)

	// FindByUsername 根据用户名查找客户(登录用)
	FindByUsername(ctx context.Context, username string) (*Customer, error)

	// Update 更新客户信息(不含余额,余额走Debit/Credit)
	Update(ctx context.Context, customer *Customer) error

	// Delete 删除客户(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询客户列表(管理员)
	List(ctx context.Context, page, pageSize int) ([]*Customer, int64, error)

	// Debit 扣减余额(原子操作)
	// 使用带条件的UPDATE保证余额不为负:
	// UPDATE customers SET balance = balance - ? WHERE id = ? AND balance >= ?
	// 余额不足返回ErrInsufficientBalance,这是并发扣减时的最终防线
	Debit(ctx context.Context, id uint, amount int64) error

	// Credit 充值余额(原子操作)
	Credit(ctx context.Context, id uint, amount int64) error
}

// AdminRepository 管理员仓储接口
type AdminRepository interface {
	// Create 创建管理员
	Create(ctx context.Context, admin *Admin) error

	// FindByID 根据ID查找管理员
	FindByID(ctx context.Context, id uint) (*Admin, error)

	// FindByUsername 根据用户名查找管理员(登录用)
	FindByUsername(ctx context.Context, username string) (*Admin, error)
}
