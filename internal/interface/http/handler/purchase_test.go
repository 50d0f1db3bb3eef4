package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apporder "github.com/bedoax/bookstore/internal/application/order"
	"github.com/bedoax/bookstore/internal/domain/order"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// fakeOrderRepo 内存订单台账,只服务于读路径测试
type fakeOrderRepo struct {
	records map[uint]*order.Record
	nextID  uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{records: make(map[uint]*order.Record), nextID: 1}
}

func (f *fakeOrderRepo) Append(ctx context.Context, r *order.Record) error {
	r.ID = f.nextID
	f.nextID++
	f.records[r.ID] = r
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return r, nil
}

func (f *fakeOrderRepo) ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*order.Record, int64, error) {
	var matched []*order.Record
	for _, r := range f.records {
		if r.CustomerID == customerID {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// envelope 统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newOrderTestRouter 搭建订单读路由
// 客户路由用注入user_id的假认证中间件;管理员路由按真实注册方式挂载
func newOrderTestRouter(repo order.Repository, loginUserID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPurchaseHandler(nil, apporder.NewHistoryUseCase(repo))

	r := gin.New()
	customer := r.Group("", func(c *gin.Context) {
		c.Set("user_id", loginUserID)
		c.Next()
	})
	customer.GET("/orders", h.ListOrders)
	customer.GET("/orders/:id", h.GetOrder)

	admin := r.Group("/admin")
	admin.GET("/customers/:id/orders", h.ListCustomerOrders)
	admin.GET("/orders/:id", h.GetOrderAdmin)
	return r
}

func seedRecord(t *testing.T, repo *fakeOrderRepo, customerID uint, totalPrice int64) *order.Record {
	t.Helper()
	r := order.NewRecord(
		fmt.Sprintf("ORD-test-%d", repo.nextID), customerID, 2, 3, totalPrice,
		"CreditCard", "收货地址", "账单地址", time.Now().AddDate(0, 0, 7),
	)
	require.NoError(t, repo.Append(context.Background(), r))
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *envelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "响应体: %s", w.Body.String())
	return &resp
}

// TestListCustomerOrders 管理员按客户查订单
func TestListCustomerOrders(t *testing.T) {
	repo := newFakeOrderRepo()
	seedRecord(t, repo, 7, 6000)
	seedRecord(t, repo, 7, 2000)
	seedRecord(t, repo, 8, 4000)
	r := newOrderTestRouter(repo, 7)

	t.Run("只返回指定客户的记录", func(t *testing.T) {
		resp := doGet(t, r, "/admin/customers/7/orders")
		require.Equal(t, 0, resp.Code, resp.Message)

		var page struct {
			List  []struct{ TotalPrice int64 `json:"total_price"` } `json:"list"`
			Total int64                                             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Equal(t, int64(2), page.Total)
		require.Len(t, page.List, 2)
		assert.Equal(t, int64(6000), page.List[0].TotalPrice)
	})

	t.Run("无记录的客户返回空列表", func(t *testing.T) {
		resp := doGet(t, r, "/admin/customers/99/orders")
		require.Equal(t, 0, resp.Code)

		var page struct {
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Equal(t, int64(0), page.Total)
	})

	t.Run("非法客户ID", func(t *testing.T) {
		resp := doGet(t, r, "/admin/customers/abc/orders")
		assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
	})
}

// TestGetOrderAdmin 管理员查任意订单详情,不做归属校验
func TestGetOrderAdmin(t *testing.T) {
	repo := newFakeOrderRepo()
	rec := seedRecord(t, repo, 7, 6000)
	// 登录身份是客户8,不是订单7的主人
	r := newOrderTestRouter(repo, 8)

	t.Run("管理员查他人订单成功", func(t *testing.T) {
		resp := doGet(t, r, fmt.Sprintf("/admin/orders/%d", rec.ID))
		require.Equal(t, 0, resp.Code, resp.Message)

		var got struct {
			OrderNo    string `json:"order_no"`
			TotalPrice int64  `json:"total_price"`
			Status     string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, rec.OrderNo, got.OrderNo)
		assert.Equal(t, int64(6000), got.TotalPrice)
		assert.Equal(t, order.StatusCompleted, got.Status)
	})

	t.Run("客户查他人订单被拒", func(t *testing.T) {
		// 同一条订单走客户路由,归属校验必须生效
		resp := doGet(t, r, fmt.Sprintf("/orders/%d", rec.ID))
		assert.Equal(t, apperrors.ErrCodeForbidden, resp.Code)
	})

	t.Run("订单不存在", func(t *testing.T) {
		resp := doGet(t, r, "/admin/orders/999")
		assert.Equal(t, apperrors.ErrCodeOrderNotFound, resp.Code)
	})
}
