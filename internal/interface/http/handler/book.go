package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/bedoax/bookstore/internal/application/book"
	"github.com/bedoax/bookstore/internal/domain/book"
	"github.com/bedoax/bookstore/internal/interface/http/dto"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
	"github.com/bedoax/bookstore/pkg/response"
)

// BookHandler 图书HTTP处理器
// 浏览接口公开,管理接口要求管理员角色(路由层挂RequireRole)
type BookHandler struct {
	browseUseCase *appbook.BrowseBooksUseCase
	manageUseCase *appbook.ManageBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	browseUseCase *appbook.BrowseBooksUseCase,
	manageUseCase *appbook.ManageBooksUseCase,
) *BookHandler {
	return &BookHandler{
		browseUseCase: browseUseCase,
		manageUseCase: manageUseCase,
	}
}

// List 图书列表
// @Summary      图书列表
// @Description  分页浏览图书,支持关键词、分类、作者过滤与价格排序,结果带Redis缓存
// @Tags         图书模块
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        keyword query string false "关键词(书名/出版社)"
// @Param        category_id query int false "分类ID"
// @Param        author_id query int false "作者ID"
// @Param        sort_by query string false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	books, total, err := h.browseUseCase.List(c.Request.Context(), book.ListParams{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Keyword:    req.Keyword,
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		SortBy:     req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}
	response.SuccessWithPage(c, list, total, req.Page, req.PageSize)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "40402图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	info, err := h.browseUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(info))
}

// GetByTitle 按书名查询图书
// @Summary      按书名查询图书
// @Description  不区分大小写的精确匹配,购书前的确认读,不走缓存
// @Tags         图书模块
// @Produce      json
// @Param        title query string true "书名"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /books/search [get]
func (h *BookHandler) GetByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "书名不能为空")
		return
	}

	info, err := h.browseUseCase.GetByTitle(c.Request.Context(), title)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(info))
}

// Publish 上架图书(管理员)
// @Summary      上架图书
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "40004书名已存在"
// @Router       /admin/books [post]
func (h *BookHandler) Publish(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	info, err := h.manageUseCase.Publish(c.Request.Context(), appbook.PublishRequest{
		Title:       req.Title,
		AuthorID:    req.AuthorID,
		CategoryID:  req.CategoryID,
		ISBN:        req.ISBN,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Publisher:   req.Publisher,
		Language:    req.Language,
		Pages:       req.Pages,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(info))
}

// Update 更新图书信息(管理员)
// @Summary      更新图书信息
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response
// @Router       /admin/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	err := h.manageUseCase.UpdateInfo(c.Request.Context(), id, appbook.UpdateInfoRequest{
		Description: req.Description,
		Publisher:   req.Publisher,
		Language:    req.Language,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// UpdatePrice 改价(管理员)
// @Summary      修改图书价格
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdatePriceRequest true "新价格(分)"
// @Success      200 {object} response.Response
// @Router       /admin/books/{id}/price [put]
func (h *BookHandler) UpdatePrice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.manageUseCase.UpdatePrice(c.Request.Context(), id, req.Price); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Restock 补货(管理员)
// @Summary      补充库存
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.RestockRequest true "补货数量"
// @Success      200 {object} response.Response
// @Router       /admin/books/{id}/restock [post]
func (h *BookHandler) Restock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.manageUseCase.Restock(c.Request.Context(), id, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 删除图书(管理员)
// @Summary      删除图书
// @Tags         图书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /admin/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toBookResponse(info *appbook.BookInfo) *dto.BookResponse {
	return &dto.BookResponse{
		ID:            info.ID,
		Title:         info.Title,
		AuthorID:      info.AuthorID,
		CategoryID:    info.CategoryID,
		ISBN:          info.ISBN,
		Description:   info.Description,
		Price:         info.Price,
		PriceYuan:     info.PriceYuan,
		Stock:         info.Stock,
		Publisher:     info.Publisher,
		Language:      info.Language,
		Pages:         info.Pages,
		Rating:        info.Rating,
		PublishedDate: info.PublishedDate,
	}
}
