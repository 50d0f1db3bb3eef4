package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bedoax/bookstore/internal/domain/order"
)

// OrderRepository 订单台账仓储的MySQL实现
// 教学要点:
// 1. Append在购书事务中调用,通过getDB(ctx)自动拿到事务连接
// 2. 台账只追加,没有Update/Delete方法:接口不提供,误用无从谈起
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &OrderRepository{db: db}
}

// Append 追加一条订单记录
func (r *OrderRepository) Append(ctx context.Context, record *order.Record) error {
	model := r.toModel(record)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	record.ID = model.ID
	return nil
}

// FindByID 根据ID查找订单记录
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*order.Record, error) {
	var model OrderRecordModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// ListByCustomerID 查询客户的订单记录(分页,按下单时间倒序)
func (r *OrderRepository) ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*order.Record, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderRecordModel{}).Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []OrderRecordModel
	offset := (page - 1) * pageSize
	err := query.Order("order_date DESC").Offset(offset).Limit(pageSize).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	records := make([]*order.Record, len(models))
	for i, model := range models {
		records[i] = r.toEntity(&model)
	}
	return records, total, nil
}

func (r *OrderRepository) toModel(rec *order.Record) *OrderRecordModel {
	return &OrderRecordModel{
		ID:              rec.ID,
		OrderNo:         rec.OrderNo,
		CustomerID:      rec.CustomerID,
		BookID:          rec.BookID,
		OrderDate:       rec.OrderDate,
		Quantity:        rec.Quantity,
		TotalPrice:      rec.TotalPrice,
		Status:          rec.Status,
		PaymentMethod:   rec.PaymentMethod,
		ShippingAddress: rec.ShippingAddress,
		BillingAddress:  rec.BillingAddress,
		DeliveryDate:    rec.DeliveryDate,
		CreatedAt:       rec.CreatedAt,
	}
}

func (r *OrderRepository) toEntity(m *OrderRecordModel) *order.Record {
	return &order.Record{
		ID:              m.ID,
		OrderNo:         m.OrderNo,
		CustomerID:      m.CustomerID,
		BookID:          m.BookID,
		OrderDate:       m.OrderDate,
		Quantity:        m.Quantity,
		TotalPrice:      m.TotalPrice,
		Status:          m.Status,
		PaymentMethod:   m.PaymentMethod,
		ShippingAddress: m.ShippingAddress,
		BillingAddress:  m.BillingAddress,
		DeliveryDate:    m.DeliveryDate,
		CreatedAt:       m.CreatedAt,
	}
}
