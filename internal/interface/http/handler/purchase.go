package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apporder "github.com/bedoax/bookstore/internal/application/order"
	"github.com/bedoax/bookstore/internal/application/purchase"
	"github.com/bedoax/bookstore/internal/interface/http/dto"
	"github.com/bedoax/bookstore/internal/interface/http/middleware"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
	"github.com/bedoax/bookstore/pkg/response"
)

// PurchaseHandler 购书HTTP处理器
type PurchaseHandler struct {
	purchaseUseCase *purchase.ExecutePurchaseUseCase
	historyUseCase  *apporder.HistoryUseCase
}

// NewPurchaseHandler 创建购书处理器
func NewPurchaseHandler(
	purchaseUseCase *purchase.ExecutePurchaseUseCase,
	historyUseCase *apporder.HistoryUseCase,
) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUseCase: purchaseUseCase,
		historyUseCase:  historyUseCase,
	}
}

// Purchase 购书
// @Summary      购书
// @Description  客户按书名批量购书。整个流程在一个数据库事务中完成：锁定库存、扣减库存、写入订单台账、扣减余额，任何一步失败全部回滚
// @Tags         购书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PurchaseRequest true "购书请求"
// @Success      200 {object} response.Response{data=dto.PurchaseResponse} "购书成功"
// @Failure      200 {object} response.Response "40401客户不存在 40402图书不存在 40001库存不足 40002余额不足 50003事务失败"
// @Router       /purchase [post]
//
// 教学说明：防超卖的核心接口
// 两个并发请求买同一本书时,SELECT FOR UPDATE让后到的事务等锁,
// 库存检查永远基于已提交的最新值,不会超卖
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "送达日期格式错误,应为2006-01-02")
		return
	}

	// 2. 从JWT取当前客户ID(不信任请求体里的任何身份字段)
	customerID := middleware.MustGetUserID(c)

	// 3. 转换为应用层DTO
	lines := make([]purchase.Line, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = purchase.Line{
			BookTitle: line.BookTitle,
			Quantity:  line.Quantity,
		}
	}

	// 4. 调用应用层用例
	conf, err := h.purchaseUseCase.Execute(c.Request.Context(), purchase.Request{
		CustomerID:      customerID,
		Lines:           lines,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		DeliveryDate:    deliveryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 5. 构建HTTP响应
	response.Success(c, &dto.PurchaseResponse{
		Reference: conf.Reference,
		OrderNo:   conf.OrderNo,
		Lines:     conf.Lines,
		Total:     conf.Total,
		TotalYuan: conf.TotalYuan,
		Balance:   conf.Balance,
		CreatedAt: conf.CreatedAt,
	})
}

// ListOrders 查询我的订单
// @Summary      查询我的订单
// @Description  客户查看自己的购书台账(分页,按下单时间倒序)
// @Tags         购书模块
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /orders [get]
func (h *PurchaseHandler) ListOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)
	customerID := middleware.MustGetUserID(c)

	records, total, err := h.historyUseCase.List(c.Request.Context(), customerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, toOrderRecordResponses(records), total, page, pageSize)
}

// GetOrder 查询订单详情
// @Summary      查询订单详情
// @Description  客户查看自己的某条订单记录,访问他人订单返回无权限
// @Tags         购书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单记录ID"
// @Success      200 {object} response.Response{data=dto.OrderRecordResponse}
// @Router       /orders/{id} [get]
func (h *PurchaseHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customerID := middleware.MustGetUserID(c)

	record, err := h.historyUseCase.Get(c.Request.Context(), id, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toOrderRecordResponse(record))
}

// ListCustomerOrders 查询指定客户的订单(管理员)
// @Summary      查询指定客户的订单
// @Tags         购书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /admin/customers/{id}/orders [get]
func (h *PurchaseHandler) ListCustomerOrders(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	records, total, err := h.historyUseCase.List(c.Request.Context(), customerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, toOrderRecordResponses(records), total, page, pageSize)
}

// GetOrderAdmin 查询任意订单详情(管理员)
// @Summary      查询任意订单详情
// @Tags         购书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单记录ID"
// @Success      200 {object} response.Response{data=dto.OrderRecordResponse}
// @Router       /admin/orders/{id} [get]
func (h *PurchaseHandler) GetOrderAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	// customerID传0:管理员查询,跳过归属校验
	record, err := h.historyUseCase.Get(c.Request.Context(), id, 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toOrderRecordResponse(record))
}

func toOrderRecordResponse(r *apporder.RecordInfo) *dto.OrderRecordResponse {
	return &dto.OrderRecordResponse{
		ID:              r.ID,
		OrderNo:         r.OrderNo,
		BookID:          r.BookID,
		OrderDate:       r.OrderDate,
		Quantity:        r.Quantity,
		TotalPrice:      r.TotalPrice,
		TotalPriceYuan:  r.TotalPriceYuan,
		Status:          r.Status,
		PaymentMethod:   r.PaymentMethod,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
		DeliveryDate:    r.DeliveryDate,
	}
}

func toOrderRecordResponses(records []*apporder.RecordInfo) []*dto.OrderRecordResponse {
	out := make([]*dto.OrderRecordResponse, len(records))
	for i, r := range records {
		out[i] = toOrderRecordResponse(r)
	}
	return out
}
