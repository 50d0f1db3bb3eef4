package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaccount "github.com/bedoax/bookstore/internal/application/account"
	"github.com/bedoax/bookstore/internal/domain/account"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// fakeCustomerRepo 内存客户仓储
type fakeCustomerRepo struct {
	byID   map[uint]*account.Customer
	nextID uint
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: make(map[uint]*account.Customer), nextID: 1}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *account.Customer) error {
	for _, existing := range f.byID {
		if existing.Username == c.Username {
			return account.ErrUsernameDuplicate
		}
	}
	c.ID = f.nextID
	f.nextID++
	clone := *c
	f.byID[c.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*account.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, account.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCustomerRepo) FindByUsername(ctx context.Context, username string) (*account.Customer, error) {
	for _, c := range f.byID {
		if c.Username == username {
			clone := *c
			return &clone, nil
		}
	}
	return nil, account.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) Update(ctx context.Context, c *account.Customer) error {
	stored, ok := f.byID[c.ID]
	if !ok {
		return account.ErrCustomerNotFound
	}
	clone := *c
	clone.Balance = stored.Balance // 余额只走Debit/Credit
	f.byID[c.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return account.ErrCustomerNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCustomerRepo) List(ctx context.Context, page, pageSize int) ([]*account.Customer, int64, error) {
	var out []*account.Customer
	for _, c := range f.byID {
		clone := *c
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCustomerRepo) Debit(ctx context.Context, id uint, amount int64) error {
	c, ok := f.byID[id]
	if !ok {
		return account.ErrCustomerNotFound
	}
	if c.Balance < amount {
		return account.ErrInsufficientBalance
	}
	c.Balance -= amount
	return nil
}

func (f *fakeCustomerRepo) Credit(ctx context.Context, id uint, amount int64) error {
	c, ok := f.byID[id]
	if !ok {
		return account.ErrCustomerNotFound
	}
	c.Balance += amount
	return nil
}

// fakeAdminRepo 内存管理员仓储
type fakeAdminRepo struct {
	byUsername map[string]*account.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byUsername: make(map[string]*account.Admin)}
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *account.Admin) error {
	if _, ok := f.byUsername[a.Username]; ok {
		return account.ErrUsernameDuplicate
	}
	a.ID = uint(len(f.byUsername) + 1)
	f.byUsername[a.Username] = a
	return nil
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id uint) (*account.Admin, error) {
	for _, a := range f.byUsername {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, account.ErrAdminNotFound
}

func (f *fakeAdminRepo) FindByUsername(ctx context.Context, username string) (*account.Admin, error) {
	a, ok := f.byUsername[username]
	if !ok {
		return nil, account.ErrAdminNotFound
	}
	return a, nil
}

// newCustomerAdminRouter 搭建管理员客户管理路由
func newCustomerAdminRouter(repo account.CustomerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := account.NewService(repo, newFakeAdminRepo())
	h := NewAccountHandler(
		appaccount.NewRegisterCustomerUseCase(service),
		nil, nil,
		appaccount.NewProfileUseCase(repo),
		nil,
	)

	r := gin.New()
	admin := r.Group("/admin")
	admin.POST("/customers", h.CreateCustomer)
	admin.GET("/customers/:id", h.GetCustomer)
	admin.PUT("/customers/:id", h.UpdateCustomer)
	return r
}

func doJSONReq(t *testing.T, r *gin.Engine, method, path string, body interface{}) *envelope {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "响应体: %s", w.Body.String())
	return &resp
}

// TestCreateCustomerAdmin 管理员创建客户
func TestCreateCustomerAdmin(t *testing.T) {
	repo := newFakeCustomerRepo()
	r := newCustomerAdminRouter(repo)

	validReq := map[string]string{
		"username": "walkin_customer",
		"password": "Passw0rd123",
		"name":     "到店客户",
		"email":    "walkin@test.com",
	}

	t.Run("正常创建", func(t *testing.T) {
		resp := doJSONReq(t, r, http.MethodPost, "/admin/customers", validReq)
		require.Equal(t, 0, resp.Code, resp.Message)

		var data struct {
			CustomerID uint   `json:"customer_id"`
			Username   string `json:"username"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.CustomerID)
		assert.Equal(t, "walkin_customer", data.Username)

		// 创建后可按ID查到
		got := doGet(t, r, fmt.Sprintf("/admin/customers/%d", data.CustomerID))
		require.Equal(t, 0, got.Code)
	})

	t.Run("重复用户名被拒", func(t *testing.T) {
		resp := doJSONReq(t, r, http.MethodPost, "/admin/customers", validReq)
		assert.Equal(t, apperrors.ErrCodeUsernameDuplicate, resp.Code)
	})

	t.Run("弱密码走同一校验路径", func(t *testing.T) {
		weak := map[string]string{
			"username": "another_one",
			"password": "12345678",
			"name":     "弱密码",
			"email":    "weak@test.com",
		}
		resp := doJSONReq(t, r, http.MethodPost, "/admin/customers", weak)
		assert.Equal(t, apperrors.ErrCodeWeakPassword, resp.Code)
	})
}

// TestUpdateCustomerAdmin 管理员更新客户资料
func TestUpdateCustomerAdmin(t *testing.T) {
	repo := newFakeCustomerRepo()
	r := newCustomerAdminRouter(repo)

	created := doJSONReq(t, r, http.MethodPost, "/admin/customers", map[string]string{
		"username": "editable",
		"password": "Passw0rd123",
		"name":     "原名",
		"email":    "editable@test.com",
	})
	require.Equal(t, 0, created.Code, created.Message)
	var data struct {
		CustomerID uint `json:"customer_id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &data))

	t.Run("正常更新", func(t *testing.T) {
		resp := doJSONReq(t, r, http.MethodPut, fmt.Sprintf("/admin/customers/%d", data.CustomerID), map[string]interface{}{
			"name": "新名字",
			"city": "上海",
			"age":  30,
		})
		require.Equal(t, 0, resp.Code, resp.Message)

		var got struct {
			Name string `json:"name"`
			City string `json:"city"`
			Age  int    `json:"age"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, "新名字", got.Name)
		assert.Equal(t, "上海", got.City)
		assert.Equal(t, 30, got.Age)
	})

	t.Run("客户不存在", func(t *testing.T) {
		resp := doJSONReq(t, r, http.MethodPut, "/admin/customers/999", map[string]interface{}{
			"name": "无人",
		})
		assert.Equal(t, apperrors.ErrCodeCustomerNotFound, resp.Code)
	})
}
