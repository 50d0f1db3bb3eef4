package purchase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedoax/bookstore/internal/domain/account"
	"github.com/bedoax/bookstore/internal/domain/book"
	"github.com/bedoax/bookstore/internal/domain/order"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
	"github.com/bedoax/bookstore/pkg/metrics"
)

// =========================================
// 内存假仓储
// 用例测试不连数据库:事务语义由fakeTxManager的快照/回滚模拟,
// 与真实仓储共享同一套领域错误,保证错误路径行为一致
// =========================================

type storeState struct {
	customers map[uint]*account.Customer
	books     map[uint]*book.Book
	records   []*order.Record
	nextID    uint
}

func (s *storeState) clone() *storeState {
	c := &storeState{
		customers: make(map[uint]*account.Customer, len(s.customers)),
		books:     make(map[uint]*book.Book, len(s.books)),
		records:   make([]*order.Record, len(s.records)),
		nextID:    s.nextID,
	}
	for id, cu := range s.customers {
		cp := *cu
		c.customers[id] = &cp
	}
	for id, b := range s.books {
		bp := *b
		c.books[id] = &bp
	}
	copy(c.records, s.records)
	return c
}

// fakeTxManager 模拟事务:执行前快照,失败时恢复快照
type fakeTxManager struct {
	state *storeState
}

func (tm *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := tm.state.clone()
	if err := fn(ctx); err != nil {
		*tm.state = *snapshot
		return err
	}
	return nil
}

type fakeCustomerRepo struct {
	state *storeState
	// failDebit 注入扣款时的意外错误(模拟数据库故障)
	failDebit error
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *account.Customer) error {
	r.state.nextID++
	c.ID = r.state.nextID
	cp := *c
	r.state.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*account.Customer, error) {
	c, ok := r.state.customers[id]
	if !ok {
		return nil, account.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) FindByUsername(ctx context.Context, username string) (*account.Customer, error) {
	for _, c := range r.state.customers {
		if c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, account.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *account.Customer) error {
	if _, ok := r.state.customers[c.ID]; !ok {
		return account.ErrCustomerNotFound
	}
	cp := *c
	r.state.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uint) error {
	delete(r.state.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, page, pageSize int) ([]*account.Customer, int64, error) {
	return nil, 0, nil
}

func (r *fakeCustomerRepo) Debit(ctx context.Context, id uint, amount int64) error {
	if r.failDebit != nil {
		return r.failDebit
	}
	c, ok := r.state.customers[id]
	if !ok {
		return account.ErrCustomerNotFound
	}
	if c.Balance < amount {
		return account.ErrInsufficientBalance
	}
	c.Balance -= amount
	return nil
}

func (r *fakeCustomerRepo) Credit(ctx context.Context, id uint, amount int64) error {
	c, ok := r.state.customers[id]
	if !ok {
		return account.ErrCustomerNotFound
	}
	c.Balance += amount
	return nil
}

type fakeBookRepo struct {
	state *storeState
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.state.nextID++
	b.ID = r.state.nextID
	bp := *b
	r.state.books[b.ID] = &bp
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.state.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	bp := *b
	return &bp, nil
}

func (r *fakeBookRepo) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	for _, b := range r.state.books {
		if strings.EqualFold(b.Title, title) {
			bp := *b
			return &bp, nil
		}
	}
	return nil, book.NewErrBookNotFound(title)
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	if _, ok := r.state.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	bp := *b
	r.state.books[b.ID] = &bp
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	delete(r.state.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) LockByTitle(ctx context.Context, title string) (*book.Book, error) {
	return r.FindByTitle(ctx, title)
}

func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	b, ok := r.state.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.Stock += delta
	return nil
}

type fakeOrderRepo struct {
	state *storeState
}

func (r *fakeOrderRepo) Append(ctx context.Context, rec *order.Record) error {
	r.state.nextID++
	rec.ID = r.state.nextID
	rp := *rec
	r.state.records = append(r.state.records, &rp)
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Record, error) {
	for _, rec := range r.state.records {
		if rec.ID == id {
			rp := *rec
			return &rp, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*order.Record, int64, error) {
	var out []*order.Record
	for _, rec := range r.state.records {
		if rec.CustomerID == customerID {
			rp := *rec
			out = append(out, &rp)
		}
	}
	return out, int64(len(out)), nil
}

// =========================================
// 测试脚手架
// =========================================

type fixture struct {
	state        *storeState
	customerRepo *fakeCustomerRepo
	uc           *ExecutePurchaseUseCase
}

// newFixture 构造标准测试场景:
// 客户余额100.00元,图书《Dune》单价20.00元,库存5本
func newFixture(t *testing.T) *fixture {
	t.Helper()
	metrics.InitMetrics()

	state := &storeState{
		customers: make(map[uint]*account.Customer),
		books:     make(map[uint]*book.Book),
	}
	customerRepo := &fakeCustomerRepo{state: state}
	bookRepo := &fakeBookRepo{state: state}
	orderRepo := &fakeOrderRepo{state: state}
	txManager := &fakeTxManager{state: state}

	ctx := context.Background()
	customer := account.NewCustomer("frank", "hashed", "Frank Herbert", "frank@example.com")
	customer.Balance = 10000 // 100.00元
	require.NoError(t, customerRepo.Create(ctx, customer))

	dune := book.NewBook("Dune", 1, 1, "9780441013593", "", 2000, 5,
		time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC), "Ace", "English", 412)
	require.NoError(t, bookRepo.Create(ctx, dune))

	return &fixture{
		state:        state,
		customerRepo: customerRepo,
		uc:           NewExecutePurchaseUseCase(customerRepo, bookRepo, orderRepo, txManager),
	}
}

func (f *fixture) customerBalance() int64 {
	return f.state.customers[1].Balance
}

func (f *fixture) bookStock() int {
	return f.state.books[2].Stock
}

func (f *fixture) request(lines ...Line) Request {
	return Request{
		CustomerID:      1,
		Lines:           lines,
		PaymentMethod:   "CreditCard",
		ShippingAddress: "Arrakis, Sietch Tabr 1",
		BillingAddress:  "Arrakis, Sietch Tabr 1",
		DeliveryDate:    time.Now().AddDate(0, 0, 7),
	}
}

func errCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperrors.GetAppError(err).Code
}

// =========================================
// 用例测试
// =========================================

func TestExecutePurchase_Success(t *testing.T) {
	f := newFixture(t)

	conf, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: 3}))
	require.NoError(t, err)
	require.NotNil(t, conf)

	// 确认单内容
	assert.NotEmpty(t, conf.Reference)
	assert.NotEmpty(t, conf.OrderNo)
	assert.Equal(t, 1, conf.Lines)
	assert.Equal(t, int64(6000), conf.Total)
	assert.Equal(t, "60.00", conf.TotalYuan)
	assert.Equal(t, int64(4000), conf.Balance)

	// 状态变更:库存5→2,余额100.00→40.00
	assert.Equal(t, 2, f.bookStock())
	assert.Equal(t, int64(4000), f.customerBalance())

	// 台账:恰好一条记录,金额为下单时快照
	require.Len(t, f.state.records, 1)
	rec := f.state.records[0]
	assert.Equal(t, conf.OrderNo, rec.OrderNo)
	assert.Equal(t, uint(1), rec.CustomerID)
	assert.Equal(t, 3, rec.Quantity)
	assert.Equal(t, int64(6000), rec.TotalPrice)
	assert.Equal(t, order.StatusCompleted, rec.Status)
}

func TestExecutePurchase_TitleCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "dUnE", Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, 4, f.bookStock())
}

func TestExecutePurchase_MultipleLines(t *testing.T) {
	f := newFixture(t)
	hobbit := book.NewBook("The Hobbit", 1, 1, "9780547928227", "", 1500, 3,
		time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC), "Allen & Unwin", "English", 310)
	require.NoError(t, (&fakeBookRepo{state: f.state}).Create(context.Background(), hobbit))

	conf, err := f.uc.Execute(context.Background(), f.request(
		Line{BookTitle: "Dune", Quantity: 2},
		Line{BookTitle: "The Hobbit", Quantity: 1},
	))
	require.NoError(t, err)

	// 2×20.00 + 1×15.00 = 55.00
	assert.Equal(t, int64(5500), conf.Total)
	assert.Equal(t, 2, conf.Lines)
	assert.Equal(t, int64(4500), f.customerBalance())

	// 每行一条台账,共享同一订单号
	require.Len(t, f.state.records, 2)
	assert.Equal(t, f.state.records[0].OrderNo, f.state.records[1].OrderNo)
}

func TestExecutePurchase_CustomerNotFound(t *testing.T) {
	f := newFixture(t)

	req := f.request(Line{BookTitle: "Dune", Quantity: 1})
	req.CustomerID = 999
	_, err := f.uc.Execute(context.Background(), req)

	assert.Equal(t, apperrors.ErrCodeCustomerNotFound, errCode(t, err))
	assert.Equal(t, 5, f.bookStock())
	assert.Empty(t, f.state.records)
}

func TestExecutePurchase_BookNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Neuromancer", Quantity: 1}))

	assert.Equal(t, apperrors.ErrCodeBookNotFound, errCode(t, err))
	// 错误信息携带书名,客户端能定位出错的行
	assert.Contains(t, err.Error(), "Neuromancer")
	assert.Equal(t, int64(10000), f.customerBalance())
	assert.Empty(t, f.state.records)
}

func TestExecutePurchase_InsufficientStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: 10}))

	assert.Equal(t, apperrors.ErrCodeInsufficientStock, errCode(t, err))
	assert.Contains(t, err.Error(), "Dune")

	// 全量回滚:库存、余额、台账都不变
	assert.Equal(t, 5, f.bookStock())
	assert.Equal(t, int64(10000), f.customerBalance())
	assert.Empty(t, f.state.records)
}

func TestExecutePurchase_InsufficientBalance(t *testing.T) {
	f := newFixture(t)
	f.state.customers[1].Balance = 3000 // 30.00元,不够买2本

	_, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: 2}))

	assert.Equal(t, apperrors.ErrCodeInsufficientBalance, errCode(t, err))

	// 循环内已扣过库存、落过台账,事务回滚后必须全部复原
	assert.Equal(t, 5, f.bookStock())
	assert.Equal(t, int64(3000), f.customerBalance())
	assert.Empty(t, f.state.records)
}

func TestExecutePurchase_ValidationOrder(t *testing.T) {
	f := newFixture(t)

	t.Run("先报第一行的图书不存在", func(t *testing.T) {
		// 第一行书不存在,第二行库存也不足:只报第一行的错
		_, err := f.uc.Execute(context.Background(), f.request(
			Line{BookTitle: "Neuromancer", Quantity: 1},
			Line{BookTitle: "Dune", Quantity: 10},
		))
		assert.Equal(t, apperrors.ErrCodeBookNotFound, errCode(t, err))
		assert.Contains(t, err.Error(), "Neuromancer")
	})

	t.Run("余额错误最后报", func(t *testing.T) {
		// 余额归零,同时第二行库存不足:库存错误优先于余额错误
		f.state.customers[1].Balance = 0
		_, err := f.uc.Execute(context.Background(), f.request(
			Line{BookTitle: "Dune", Quantity: 1},
			Line{BookTitle: "Dune", Quantity: 10},
		))
		assert.Equal(t, apperrors.ErrCodeInsufficientStock, errCode(t, err))
	})
}

func TestExecutePurchase_InvalidRequest(t *testing.T) {
	f := newFixture(t)

	t.Run("空明细", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), f.request())
		assert.Equal(t, apperrors.ErrCodeInvalidParams, errCode(t, err))
	})

	t.Run("数量为0", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: 0}))
		assert.Equal(t, apperrors.ErrCodeInvalidParams, errCode(t, err))
	})

	t.Run("数量为负", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: -1}))
		assert.Equal(t, apperrors.ErrCodeInvalidParams, errCode(t, err))
	})
}

func TestExecutePurchase_FailureThenRetry(t *testing.T) {
	f := newFixture(t)

	// 失败的请求不留任何痕迹,重试成功后状态与首次成功完全一致
	_, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: 10}))
	require.Error(t, err)

	conf, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: 3}))
	require.NoError(t, err)
	assert.Equal(t, int64(6000), conf.Total)
	assert.Equal(t, 2, f.bookStock())
	assert.Equal(t, int64(4000), f.customerBalance())
	assert.Len(t, f.state.records, 1)
}

func TestExecutePurchase_ExactBalance(t *testing.T) {
	f := newFixture(t)
	f.state.customers[1].Balance = 6000 // 恰好够买3本

	conf, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: 3}))
	require.NoError(t, err)
	assert.Equal(t, int64(0), conf.Balance)
	assert.Equal(t, int64(0), f.customerBalance())
}

func TestExecutePurchase_UnexpectedErrorMapsToTxFailure(t *testing.T) {
	f := newFixture(t)
	f.customerRepo.failDebit = errors.New("driver: bad connection")

	_, err := f.uc.Execute(context.Background(), f.request(Line{BookTitle: "Dune", Quantity: 1}))

	// 底层故障不透传:统一翻译为事务失败
	assert.Equal(t, apperrors.ErrCodeTxFailure, errCode(t, err))
	assert.NotContains(t, apperrors.GetAppError(err).Message, "driver")

	// 扣款失败时库存已扣、台账已落,回滚后全部复原
	assert.Equal(t, 5, f.bookStock())
	assert.Empty(t, f.state.records)
}
