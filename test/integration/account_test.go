package integration

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterAndLogin 测试客户注册登录流程
func TestRegisterAndLogin(t *testing.T) {
	base := BaseURL(t)

	t.Run("正常注册登录", func(t *testing.T) {
		username := GenerateTestUsername("reader")
		registerResp := PostJSON(t, base+"/auth/register", map[string]string{
			"username": username,
			"password": "Test1234",
			"name":     "测试读者",
			"email":    username + "@test.com",
		}, "")
		require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

		loginResp := PostJSON(t, base+"/auth/login", map[string]string{
			"username": username,
			"password": "Test1234",
		}, "")
		require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

		var data LoginData
		require.NoError(t, json.Unmarshal(loginResp.Data, &data))
		assert.NotEmpty(t, data.AccessToken)
		assert.NotEmpty(t, data.RefreshToken)
		assert.Equal(t, "Customer", data.Role)
	})

	t.Run("重复用户名注册失败", func(t *testing.T) {
		username := GenerateTestUsername("dup")
		req := map[string]string{
			"username": username,
			"password": "Test1234",
			"name":     "张三",
			"email":    username + "@test.com",
		}
		first := PostJSON(t, base+"/auth/register", req, "")
		require.Equal(t, 0, first.Code)

		second := PostJSON(t, base+"/auth/register", req, "")
		assert.Equal(t, 40003, second.Code, "重复用户名应该被拒绝")
	})

	t.Run("密码错误登录失败", func(t *testing.T) {
		_, _ = RegisterTestCustomer(t, "wrongpw")
		resp := PostJSON(t, base+"/auth/login", map[string]string{
			"username": "wrongpw_nonexistent",
			"password": "BadPass999",
		}, "")
		assert.NotEqual(t, 0, resp.Code, "错误凭据不应登录成功")
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		_, token := RegisterTestCustomer(t, "leaver")

		// 登出前可以访问
		before := GetJSON(t, base+"/customers/me", token)
		require.Equal(t, 0, before.Code)

		logoutResp := PostJSON(t, base+"/auth/logout", nil, token)
		require.Equal(t, 0, logoutResp.Code, "登出失败: %s", logoutResp.Message)

		// 登出后Token已进黑名单
		after := GetJSON(t, base+"/customers/me", token)
		assert.Equal(t, 40100, after.Code, "登出后的Token应该被拒绝")
	})
}

// TestBookBrowse 测试图书浏览（公开接口，无需登录）
func TestBookBrowse(t *testing.T) {
	base := BaseURL(t)
	adminToken := LoginAdmin(t)

	title := GenerateTestTitle("围城")
	bookID := PublishTestBook(t, adminToken, title, 3500, 8)

	t.Run("按ID查询", func(t *testing.T) {
		book := GetBook(t, bookID)
		assert.Equal(t, title, book.Title)
		assert.Equal(t, int64(3500), book.Price)
		assert.Equal(t, "35.00", book.PriceYuan)
		assert.Equal(t, 8, book.Stock)
	})

	t.Run("按书名搜索", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/search?title=%s", base, url.QueryEscape(title)), "")
		require.Equal(t, 0, resp.Code, "按书名搜索失败: %s", resp.Message)

		var book BookData
		require.NoError(t, json.Unmarshal(resp.Data, &book))
		assert.Equal(t, bookID, book.ID)
	})

	t.Run("分页列表", func(t *testing.T) {
		resp := GetJSON(t, base+"/books?page=1&page_size=5", "")
		require.Equal(t, 0, resp.Code)

		var page struct {
			List  []BookData `json:"list"`
			Total int64      `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.NotZero(t, page.Total)
		assert.LessOrEqual(t, len(page.List), 5)
	})

	t.Run("游客不能上架图书", func(t *testing.T) {
		resp := PostJSON(t, base+"/admin/books", map[string]interface{}{
			"title":       GenerateTestTitle("偷跑"),
			"author_id":   1,
			"category_id": 1,
			"isbn":        GenerateTestISBN(),
			"price":       1000,
		}, "")
		assert.Equal(t, 40100, resp.Code, "未认证请求应该被拒绝")
	})
}
