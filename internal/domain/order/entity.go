package order

import (
	"time"
)

// 订单状态常量
// 设计说明:购书流程在同一事务内完成扣库存、扣余额、落订单,
// 订单一经写入即为终态"Completed",不存在后续状态流转,
// 因此不建状态机,也不拆分独立的明细实体
const (
	StatusCompleted = "Completed"
)

// Record 订单台账记录(每个成功购买的行一条,追加后不可变)
// 设计说明:
// 1. 原始需求中OrderHistory与OrderDetail是一对一拆分,这里合并为单条记录:
//    没有更新路径的数据拆两张表只会多一次JOIN
// 2. TotalPrice是"下单时单价×数量"的快照(分),防止改价后历史订单金额变化
// 3. PaymentMethod只作为元数据记录,不对接支付网关
type Record struct {
	ID              uint
	OrderNo         string // 订单号(业务主键,全局唯一)
	CustomerID      uint   // 买家客户ID
	BookID          uint   // 图书ID
	OrderDate       time.Time
	Quantity        int    // 购买数量
	TotalPrice      int64  // 行金额(分)
	Status          string // 订单状态(固定为Completed)
	PaymentMethod   string // 支付方式(元数据)
	ShippingAddress string // 收货地址
	BillingAddress  string // 账单地址
	DeliveryDate    time.Time
	CreatedAt       time.Time
}

// NewRecord 创建订单记录(工厂方法)
// 状态固定为Completed:记录只在事务成功提交时可见
func NewRecord(orderNo string, customerID, bookID uint, quantity int, totalPrice int64,
	paymentMethod, shippingAddress, billingAddress string, deliveryDate time.Time) *Record {
	now := time.Now()
	return &Record{
		OrderNo:         orderNo,
		CustomerID:      customerID,
		BookID:          bookID,
		OrderDate:       now,
		Quantity:        quantity,
		TotalPrice:      totalPrice,
		Status:          StatusCompleted,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shippingAddress,
		BillingAddress:  billingAddress,
		DeliveryDate:    deliveryDate,
		CreatedAt:       now,
	}
}

// IsOwnedBy 检查订单是否属于指定客户
// 权限校验,防止客户访问他人订单
func (r *Record) IsOwnedBy(customerID uint) bool {
	return r.CustomerID == customerID
}
