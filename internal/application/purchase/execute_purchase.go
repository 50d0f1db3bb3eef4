package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bedoax/bookstore/internal/domain/account"
	"github.com/bedoax/bookstore/internal/domain/book"
	"github.com/bedoax/bookstore/internal/domain/order"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
	"github.com/bedoax/bookstore/pkg/metrics"
)

// TxManager 事务边界抽象
// mysql.TxManager实现该接口;回调返回error即回滚,返回nil即提交
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ExecutePurchaseUseCase 购书用例
// 教学要点:这是整个项目最核心的用例
// 一次请求内完成:客户校验 → 逐行锁书/验库存/扣库存/落台账 → 扣余额
// 全部操作在同一个事务中,任何一步失败则全部回滚
type ExecutePurchaseUseCase struct {
	customerRepo account.CustomerRepository
	bookRepo     book.Repository
	orderRepo    order.Repository
	txManager    TxManager
}

// NewExecutePurchaseUseCase 创建购书用例
func NewExecutePurchaseUseCase(
	customerRepo account.CustomerRepository,
	bookRepo book.Repository,
	orderRepo order.Repository,
	txManager TxManager,
) *ExecutePurchaseUseCase {
	return &ExecutePurchaseUseCase{
		customerRepo: customerRepo,
		bookRepo:     bookRepo,
		orderRepo:    orderRepo,
		txManager:    txManager,
	}
}

// Request 购书请求DTO
type Request struct {
	CustomerID      uint      // 买家客户ID(从JWT中提取)
	Lines           []Line    // 购买行
	PaymentMethod   string    // 支付方式(元数据)
	ShippingAddress string    // 收货地址
	BillingAddress  string    // 账单地址
	DeliveryDate    time.Time // 期望送达日期
}

// Line 购买行:按书名购买
type Line struct {
	BookTitle string // 书名(不区分大小写)
	Quantity  int    // 购买数量
}

// Confirmation 购书确认DTO
type Confirmation struct {
	Reference string `json:"reference"`  // 本次购书的唯一引用号
	OrderNo   string `json:"order_no"`   // 订单号(本次购书的所有行共享)
	Lines     int    `json:"lines"`      // 购买行数
	Total     int64  `json:"total"`      // 总金额(分)
	TotalYuan string `json:"total_yuan"` // 总金额(元,展示用)
	Balance   int64  `json:"balance"`    // 扣款后余额(分)
	CreatedAt string `json:"created_at"` // 下单时间
}

// Execute 执行购书用例
//
// 校验顺序是对外契约的一部分,客户端依赖它定位第一个出错的环节:
//  1. 客户不存在 → 客户错误
//  2. 按请求顺序逐行:书名找不到 → 图书错误(带书名)
//  3. 同一行内:库存不足 → 库存错误(带书名)
//  4. 所有行处理完后:余额不足 → 余额错误
//
// 并发控制:
//   - LockByTitle对库存行加排他锁(SELECT FOR UPDATE),
//     两个并发请求买同一本书时,后到的事务等锁,不会超卖
//   - UpdateStock/Debit的带条件UPDATE是最终防线
//
// 原子性:任何错误都让整个事务回滚,库存、余额、台账一个都不会变
func (uc *ExecutePurchaseUseCase) Execute(ctx context.Context, req Request) (*Confirmation, error) {
	start := time.Now()

	conf, err := uc.execute(ctx, req)

	metrics.ObservePurchase(purchaseResult(err), totalOf(conf), time.Since(start))
	return conf, err
}

func (uc *ExecutePurchaseUseCase) execute(ctx context.Context, req Request) (*Confirmation, error) {
	// 1. 参数校验(事务外,纯内存判断)
	if len(req.Lines) == 0 {
		return nil, order.ErrInvalidPurchaseLines
	}

	var conf *Confirmation
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:校验客户存在
		// ========================================
		customer, err := uc.customerRepo.FindByID(txCtx, req.CustomerID)
		if err != nil {
			return err
		}

		// 本次购书的所有行共享一个订单号
		orderNo := order.GenerateOrderNo()
		orderDate := time.Now()

		// ========================================
		// 步骤2:逐行处理(严格按请求顺序)
		// ========================================
		var total int64
		for _, line := range req.Lines {
			if line.Quantity <= 0 {
				return order.ErrInvalidQuantity
			}

			// 悲观锁定位图书:SELECT ... WHERE LOWER(title)=LOWER(?) FOR UPDATE
			// 找不到返回带书名的图书错误
			b, err := uc.bookRepo.LockByTitle(txCtx, line.BookTitle)
			if err != nil {
				return err
			}

			// 锁定后检查库存,错误信息携带书名与缺口
			if b.Stock < line.Quantity {
				return book.NewErrInsufficientStock(b.Title, b.Stock, line.Quantity)
			}

			// 使用数据库中的当前价格计价,防止改价攻击
			total += b.LineTotal(line.Quantity)

			// 扣减库存(带条件UPDATE兜底)
			if err := uc.bookRepo.UpdateStock(txCtx, b.ID, -line.Quantity); err != nil {
				return err
			}

			// 落台账:每行一条记录,状态直接为Completed
			record := order.NewRecord(orderNo, customer.ID, b.ID, line.Quantity,
				b.LineTotal(line.Quantity), req.PaymentMethod,
				req.ShippingAddress, req.BillingAddress, req.DeliveryDate)
			record.OrderDate = orderDate
			if err := uc.orderRepo.Append(txCtx, record); err != nil {
				return err
			}
		}

		// ========================================
		// 步骤3:扣款(所有行处理完之后)
		// ========================================
		// 余额校验放在循环之后:客户端先拿到逐行的图书/库存错误,
		// 只有全部行都有效时才会收到余额错误
		if !customer.CanAfford(total) {
			return account.ErrInsufficientBalance
		}
		if err := uc.customerRepo.Debit(txCtx, customer.ID, total); err != nil {
			return err
		}

		conf = &Confirmation{
			Reference: uuid.NewString(),
			OrderNo:   orderNo,
			Lines:     len(req.Lines),
			Total:     total,
			TotalYuan: formatPrice(total),
			Balance:   customer.Balance - total,
			CreatedAt: orderDate.Format("2006-01-02 15:04:05"),
		}
		return nil
	})

	if err != nil {
		// 业务错误(4xxxx)原样返回;数据库/网络等未知错误统一翻译为事务失败,
		// 不把底层细节泄露给客户端
		appErr := apperrors.GetAppError(err)
		if appErr.Code >= 40000 && appErr.Code < 50000 {
			return nil, appErr
		}
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeTxFailure,
			Message: "购书事务执行失败，请稍后重试",
			Err:     err,
		}
	}

	return conf, nil
}

// purchaseResult 将错误映射为监控指标的result标签
func purchaseResult(err error) string {
	if err == nil {
		return "success"
	}
	switch apperrors.GetAppError(err).Code {
	case apperrors.ErrCodeCustomerNotFound:
		return "customer_not_found"
	case apperrors.ErrCodeBookNotFound:
		return "book_not_found"
	case apperrors.ErrCodeInsufficientStock:
		return "insufficient_stock"
	case apperrors.ErrCodeInsufficientBalance:
		return "insufficient_balance"
	default:
		return "tx_failure"
	}
}

func totalOf(conf *Confirmation) int64 {
	if conf == nil {
		return 0
	}
	return conf.Total
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	return fmt.Sprintf("%d.%02d", priceFen/100, priceFen%100)
}
