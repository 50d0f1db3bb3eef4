package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：集成测试辅助工具
// 集成测试需要一个已启动的服务实例（go run ./cmd/api），
// 通过环境变量BOOKSTORE_TEST_BASE_URL指定服务地址；未设置时跳过整个测试文件。
// 管理员账号由服务启动时按config.yaml的admin段引导创建，用户名/密码通过环境变量传入。

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// BaseURL 返回被测服务的API基础URL；未配置时跳过当前测试
func BaseURL(t *testing.T) string {
	t.Helper()
	base := os.Getenv("BOOKSTORE_TEST_BASE_URL")
	if base == "" {
		t.Skip("BOOKSTORE_TEST_BASE_URL未设置，跳过集成测试")
	}
	return base + "/api/v1"
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginData 登录响应数据
type LoginData struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	PriceYuan string `json:"price_yuan"`
	Stock     int    `json:"stock"`
}

// PurchaseData 购书确认响应数据
type PurchaseData struct {
	Reference string `json:"reference"`
	OrderNo   string `json:"order_no"`
	Lines     int    `json:"lines"`
	Total     int64  `json:"total"`
	TotalYuan string `json:"total_yuan"`
	Balance   int64  `json:"balance"`
}

// ProfileData 客户资料响应数据
type ProfileData struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Balance     int64  `json:"balance"`
	BalanceYuan string `json:"balance_yuan"`
}

// OrderRecordData 购书台账响应数据
type OrderRecordData struct {
	ID             uint   `json:"id"`
	OrderNo        string `json:"order_no"`
	BookID         uint   `json:"book_id"`
	Quantity       int    `json:"quantity"`
	TotalPrice     int64  `json:"total_price"`
	TotalPriceYuan string `json:"total_price_yuan"`
	Status         string `json:"status"`
}

// doJSON 发送带JSON体的请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// GenerateTestUsername 生成唯一的测试用户名
// 使用纳秒时间戳避免测试重复运行时用户名冲突
func GenerateTestUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()%1000000000)
}

// GenerateTestTitle 生成唯一的测试书名（书名在系统内唯一）
func GenerateTestTitle(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano()%1000000000)
}

// GenerateTestISBN 生成唯一的测试ISBN
func GenerateTestISBN() string {
	return fmt.Sprintf("978%010d", time.Now().UnixNano()%10000000000)
}

// LoginAdmin 用环境变量中的管理员账号登录，返回管理员Token
func LoginAdmin(t *testing.T) string {
	t.Helper()

	username := os.Getenv("BOOKSTORE_TEST_ADMIN_USER")
	password := os.Getenv("BOOKSTORE_TEST_ADMIN_PASS")
	if username == "" || password == "" {
		t.Skip("BOOKSTORE_TEST_ADMIN_USER/BOOKSTORE_TEST_ADMIN_PASS未设置，跳过需要管理员的测试")
	}

	resp := PostJSON(t, BaseURL(t)+"/auth/admin/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, 0, resp.Code, "管理员登录失败: %s", resp.Message)

	var data LoginData
	require.NoError(t, json.Unmarshal(resp.Data, &data), "解析登录响应失败")
	return data.AccessToken
}

// RegisterTestCustomer 注册测试客户并登录，返回客户ID和Token
func RegisterTestCustomer(t *testing.T, prefix string) (customerID uint, token string) {
	t.Helper()

	username := GenerateTestUsername(prefix)
	registerResp := PostJSON(t, BaseURL(t)+"/auth/register", map[string]string{
		"username": username,
		"password": "Test1234",
		"name":     "测试客户",
		"email":    username + "@test.com",
	}, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginResp := PostJSON(t, BaseURL(t)+"/auth/login", map[string]string{
		"username": username,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var data LoginData
	require.NoError(t, json.Unmarshal(loginResp.Data, &data), "解析登录响应失败")
	return data.UserID, data.AccessToken
}

// PublishTestBook 用管理员Token上架一本测试图书，返回图书ID
// 需要先创建作者和分类（图书必须挂在作者/分类下）
func PublishTestBook(t *testing.T, adminToken, title string, price int64, stock int) uint {
	t.Helper()
	base := BaseURL(t)

	authorResp := PostJSON(t, base+"/admin/authors", map[string]interface{}{
		"name": GenerateTestUsername("作者"),
	}, adminToken)
	require.Equal(t, 0, authorResp.Code, "创建作者失败: %s", authorResp.Message)
	var author struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(authorResp.Data, &author))

	categoryResp := PostJSON(t, base+"/admin/categories", map[string]interface{}{
		"name": GenerateTestUsername("分类"),
	}, adminToken)
	require.Equal(t, 0, categoryResp.Code, "创建分类失败: %s", categoryResp.Message)
	var category struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(categoryResp.Data, &category))

	bookResp := PostJSON(t, base+"/admin/books", map[string]interface{}{
		"title":       title,
		"author_id":   author.ID,
		"category_id": category.ID,
		"isbn":        GenerateTestISBN(),
		"price":       price,
		"stock":       stock,
		"publisher":   "测试出版社",
		"language":    "Chinese",
	}, adminToken)
	require.Equal(t, 0, bookResp.Code, "上架图书失败: %s", bookResp.Message)

	var book BookData
	require.NoError(t, json.Unmarshal(bookResp.Data, &book))
	require.NotZero(t, book.ID)
	return book.ID
}

// TopUpCustomer 用管理员Token给客户充值
func TopUpCustomer(t *testing.T, adminToken string, customerID uint, amount int64) {
	t.Helper()

	resp := PostJSON(t, fmt.Sprintf("%s/admin/customers/%d/topup", BaseURL(t), customerID), map[string]interface{}{
		"amount": amount,
	}, adminToken)
	require.Equal(t, 0, resp.Code, "充值失败: %s", resp.Message)
}

// GetBook 查询图书详情
func GetBook(t *testing.T, bookID uint) *BookData {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL(t), bookID), "")
	require.Equal(t, 0, resp.Code, "查询图书失败: %s", resp.Message)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book))
	return &book
}

// GetProfile 查询客户自己的资料
func GetProfile(t *testing.T, token string) *ProfileData {
	t.Helper()

	resp := GetJSON(t, BaseURL(t)+"/customers/me", token)
	require.Equal(t, 0, resp.Code, "查询资料失败: %s", resp.Message)

	var profile ProfileData
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	return &profile
}
