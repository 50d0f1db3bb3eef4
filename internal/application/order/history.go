package order

import (
	"context"
	"fmt"

	"github.com/bedoax/bookstore/internal/domain/order"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// HistoryUseCase 订单历史用例
// 客户查看自己的购书台账,越权访问他人订单返回无权限
type HistoryUseCase struct {
	orderRepo order.Repository
}

// NewHistoryUseCase 创建订单历史用例
func NewHistoryUseCase(orderRepo order.Repository) *HistoryUseCase {
	return &HistoryUseCase{orderRepo: orderRepo}
}

// RecordInfo 订单记录DTO
type RecordInfo struct {
	ID              uint   `json:"id"`
	OrderNo         string `json:"order_no"`
	BookID          uint   `json:"book_id"`
	OrderDate       string `json:"order_date"`
	Quantity        int    `json:"quantity"`
	TotalPrice      int64  `json:"total_price"`
	TotalPriceYuan  string `json:"total_price_yuan"`
	Status          string `json:"status"`
	PaymentMethod   string `json:"payment_method"`
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
	DeliveryDate    string `json:"delivery_date"`
}

func toRecordInfo(r *order.Record) *RecordInfo {
	return &RecordInfo{
		ID:              r.ID,
		OrderNo:         r.OrderNo,
		BookID:          r.BookID,
		OrderDate:       r.OrderDate.Format("2006-01-02 15:04:05"),
		Quantity:        r.Quantity,
		TotalPrice:      r.TotalPrice,
		TotalPriceYuan:  fmt.Sprintf("%d.%02d", r.TotalPrice/100, r.TotalPrice%100),
		Status:          r.Status,
		PaymentMethod:   r.PaymentMethod,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
		DeliveryDate:    r.DeliveryDate.Format("2006-01-02"),
	}
}

// List 查询客户的订单记录(分页,按下单时间倒序)
func (uc *HistoryUseCase) List(ctx context.Context, customerID uint, page, pageSize int) ([]*RecordInfo, int64, error) {
	records, total, err := uc.orderRepo.ListByCustomerID(ctx, customerID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*RecordInfo, len(records))
	for i, r := range records {
		infos[i] = toRecordInfo(r)
	}
	return infos, total, nil
}

// Get 查询单条订单记录
// customerID为0表示管理员查询,跳过归属校验
func (uc *HistoryUseCase) Get(ctx context.Context, id, customerID uint) (*RecordInfo, error) {
	r, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if customerID != 0 && !r.IsOwnedBy(customerID) {
		return nil, apperrors.ErrForbidden
	}
	return toRecordInfo(r), nil
}
