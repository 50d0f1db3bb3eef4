package integration

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：购书模块集成测试
//
// 购书是本项目的核心，包含以下关键技术点：
// 1. 数据库事务（要么全部成交，要么全部回滚）
// 2. 悲观锁防超卖（SELECT FOR UPDATE按书名锁行）
// 3. 校验顺序：客户 → 逐行图书存在性 → 逐行库存 → 余额
//
// 标准场景：余额100.00元，书价20.00元，库存5本。
// 买3本应成功（库存剩2、余额剩40.00、台账1条）；
// 再买10本应报库存不足，且库存/余额/台账都不变。

func deliveryDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func purchaseReq(title string, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"lines": []map[string]interface{}{
			{"book_title": title, "quantity": quantity},
		},
		"payment_method":   "CreditCard",
		"shipping_address": "北京市海淀区中关村大街1号",
		"billing_address":  "北京市海淀区中关村大街1号",
		"delivery_date":    deliveryDate(),
	}
}

// TestPurchase 测试标准购书场景
func TestPurchase(t *testing.T) {
	base := BaseURL(t)
	adminToken := LoginAdmin(t)

	customerID, token := RegisterTestCustomer(t, "buyer")
	TopUpCustomer(t, adminToken, customerID, 10000) // 余额100.00元

	title := GenerateTestTitle("Dune")
	bookID := PublishTestBook(t, adminToken, title, 2000, 5) // 20.00元，库存5

	t.Run("买3本成功", func(t *testing.T) {
		resp := PostJSON(t, base+"/purchase", purchaseReq(title, 3), token)
		require.Equal(t, 0, resp.Code, "购书应该成功: %s", resp.Message)

		var data PurchaseData
		require.NoError(t, json.Unmarshal(resp.Data, &data))

		assert.NotEmpty(t, data.Reference, "应返回购书凭据号")
		assert.NotEmpty(t, data.OrderNo, "应返回订单号")
		assert.Equal(t, 1, data.Lines)
		assert.Equal(t, int64(6000), data.Total, "总价应该是20.00*3=60.00元")
		assert.Equal(t, "60.00", data.TotalYuan)
		assert.Equal(t, int64(4000), data.Balance, "扣款后余额应剩40.00元")

		// 库存扣减
		book := GetBook(t, bookID)
		assert.Equal(t, 2, book.Stock, "库存应从5减到2")

		// 余额扣减
		profile := GetProfile(t, token)
		assert.Equal(t, int64(4000), profile.Balance)
		assert.Equal(t, "40.00", profile.BalanceYuan)

		// 台账落了一条记录
		ordersResp := GetJSON(t, base+"/orders", token)
		require.Equal(t, 0, ordersResp.Code)
		var page struct {
			List []OrderRecordData `json:"list"`
		}
		require.NoError(t, json.Unmarshal(ordersResp.Data, &page))
		require.Len(t, page.List, 1, "应该只有一条购书记录")
		assert.Equal(t, data.OrderNo, page.List[0].OrderNo)
		assert.Equal(t, bookID, page.List[0].BookID)
		assert.Equal(t, 3, page.List[0].Quantity)
		assert.Equal(t, int64(6000), page.List[0].TotalPrice)
		assert.Equal(t, "Completed", page.List[0].Status)

		t.Logf("✓ 购书成功，订单号: %s，金额: %s元", data.OrderNo, data.TotalYuan)
	})

	t.Run("再买10本库存不足且什么都不变", func(t *testing.T) {
		resp := PostJSON(t, base+"/purchase", purchaseReq(title, 10), token)
		assert.Equal(t, 40001, resp.Code, "应该报库存不足")

		book := GetBook(t, bookID)
		assert.Equal(t, 2, book.Stock, "库存不应变化")

		profile := GetProfile(t, token)
		assert.Equal(t, int64(4000), profile.Balance, "余额不应变化")

		ordersResp := GetJSON(t, base+"/orders", token)
		require.Equal(t, 0, ordersResp.Code)
		var page struct {
			List []OrderRecordData `json:"list"`
		}
		require.NoError(t, json.Unmarshal(ordersResp.Data, &page))
		assert.Len(t, page.List, 1, "不应新增购书记录")
	})

	t.Run("书名不区分大小写", func(t *testing.T) {
		// 把刚才的书名转大写再买1本，仍应命中同一本书
		upperResp := PostJSON(t, base+"/purchase", purchaseReq(strings.ToUpper(title), 1), token)
		require.Equal(t, 0, upperResp.Code, "大写书名购书应该成功: %s", upperResp.Message)

		book := GetBook(t, bookID)
		assert.Equal(t, 1, book.Stock, "库存应从2减到1")
	})
}

// TestPurchaseValidation 测试购书前置校验
func TestPurchaseValidation(t *testing.T) {
	base := BaseURL(t)
	adminToken := LoginAdmin(t)

	customerID, token := RegisterTestCustomer(t, "checker")
	TopUpCustomer(t, adminToken, customerID, 1000) // 余额仅10.00元

	title := GenerateTestTitle("基地")
	bookID := PublishTestBook(t, adminToken, title, 2000, 5)

	t.Run("图书不存在", func(t *testing.T) {
		resp := PostJSON(t, base+"/purchase", purchaseReq(GenerateTestTitle("不存在的书"), 1), token)
		assert.Equal(t, 40402, resp.Code, "应该报图书不存在")
	})

	t.Run("余额不足且库存回滚", func(t *testing.T) {
		// 买1本要20.00元，余额只有10.00元
		resp := PostJSON(t, base+"/purchase", purchaseReq(title, 1), token)
		assert.Equal(t, 40002, resp.Code, "应该报余额不足")

		book := GetBook(t, bookID)
		assert.Equal(t, 5, book.Stock, "库存扣减应随事务回滚")
	})

	t.Run("未登录不能购书", func(t *testing.T) {
		resp := PostJSON(t, base+"/purchase", purchaseReq(title, 1), "")
		assert.Equal(t, 40100, resp.Code, "应该报未认证")
	})

	t.Run("多行购买一行失败全部回滚", func(t *testing.T) {
		// 第二行书不存在，第一行的库存扣减必须回滚
		req := map[string]interface{}{
			"lines": []map[string]interface{}{
				{"book_title": title, "quantity": 1},
				{"book_title": GenerateTestTitle("幽灵书"), "quantity": 1},
			},
			"payment_method":   "CreditCard",
			"shipping_address": "北京市海淀区中关村大街1号",
			"billing_address":  "北京市海淀区中关村大街1号",
			"delivery_date":    deliveryDate(),
		}
		resp := PostJSON(t, base+"/purchase", req, token)
		assert.Equal(t, 40402, resp.Code)

		book := GetBook(t, bookID)
		assert.Equal(t, 5, book.Stock, "第一行的扣减应回滚")
	})
}

// TestPurchaseConcurrent 并发购书防超卖
// 库存3本，10个客户同时各买1本：最多3个成功，库存归零不为负
func TestPurchaseConcurrent(t *testing.T) {
	base := BaseURL(t)
	adminToken := LoginAdmin(t)

	title := GenerateTestTitle("三体")
	bookID := PublishTestBook(t, adminToken, title, 2000, 3)

	const buyers = 10
	results := make(chan int, buyers)

	for i := 0; i < buyers; i++ {
		go func(i int) {
			customerID, token := RegisterTestCustomer(t, fmt.Sprintf("racer%d", i))
			TopUpCustomer(t, adminToken, customerID, 10000)
			resp := PostJSON(t, base+"/purchase", purchaseReq(title, 1), token)
			results <- resp.Code
		}(i)
	}

	succeeded := 0
	for i := 0; i < buyers; i++ {
		if code := <-results; code == 0 {
			succeeded++
		}
	}

	assert.Equal(t, 3, succeeded, "库存3本最多3人买到")

	book := GetBook(t, bookID)
	assert.Equal(t, 0, book.Stock, "库存应扣到0且不为负")
}
