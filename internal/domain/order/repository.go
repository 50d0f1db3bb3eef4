package order

import (
	"context"
)

// Repository 订单台账仓储接口(依赖倒置原则)
// 设计说明:
// 1. 台账只追加:购书路径只有Append,没有Update/Delete
// 2. Append必须在购书事务中调用(事务DB通过context传递),
//    与库存扣减、余额扣减一起提交或一起回滚
type Repository interface {
	// Append 追加一条订单记录,回填自增ID
	Append(ctx context.Context, record *Record) error

	// FindByID 根据ID查找订单记录
	FindByID(ctx context.Context, id uint) (*Record, error)

	// ListByCustomerID 查询客户的订单记录(分页,按下单时间倒序)
	ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*Record, int64, error)
}
