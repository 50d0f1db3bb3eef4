package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bedoax/bookstore/internal/application/catalog"
	"github.com/bedoax/bookstore/internal/domain/author"
	"github.com/bedoax/bookstore/internal/domain/category"
	"github.com/bedoax/bookstore/internal/interface/http/dto"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
	"github.com/bedoax/bookstore/pkg/response"
)

// CatalogHandler 目录HTTP处理器(作者与分类)
// 读接口公开,写接口要求管理员角色
type CatalogHandler struct {
	catalogUseCase *catalog.CatalogUseCase
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(catalogUseCase *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalogUseCase: catalogUseCase}
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Tags         目录模块
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /authors [get]
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	page, pageSize := parsePagination(c)

	authors, total, err := h.catalogUseCase.ListAuthors(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.AuthorResponse, len(authors))
	for i, a := range authors {
		list[i] = toAuthorResponse(a)
	}
	response.SuccessWithPage(c, list, total, page, pageSize)
}

// GetAuthor 作者详情
// @Summary      作者详情
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Router       /authors/{id} [get]
func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	a, err := h.catalogUseCase.GetAuthor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorResponse(a))
}

// CreateAuthor 新增作者(管理员)
// @Summary      新增作者
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Router       /admin/authors [post]
func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	req, ok := bindAuthorRequest(c)
	if !ok {
		return
	}

	a, err := h.catalogUseCase.CreateAuthor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorResponse(a))
}

// UpdateAuthor 更新作者(管理员)
// @Summary      更新作者
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Router       /admin/authors/{id} [put]
func (h *CatalogHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	req, ok := bindAuthorRequest(c)
	if !ok {
		return
	}

	a, err := h.catalogUseCase.UpdateAuthor(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorResponse(a))
}

// DeleteAuthor 删除作者(管理员)
// @Summary      删除作者
// @Tags         目录模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /admin/authors/{id} [delete]
func (h *CatalogHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogUseCase.DeleteAuthor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         目录模块
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogUseCase.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		list[i] = toCategoryResponse(cat)
	}
	response.Success(c, list)
}

// CreateCategory 新增分类(管理员)
// @Summary      新增分类
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      200 {object} response.Response "40009分类名已存在"
// @Router       /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	cat, err := h.catalogUseCase.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCategoryResponse(cat))
}

// RenameCategory 重命名分类(管理员)
// @Summary      重命名分类
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Router       /admin/categories/{id} [put]
func (h *CatalogHandler) RenameCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	cat, err := h.catalogUseCase.RenameCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCategoryResponse(cat))
}

// DeleteCategory 删除分类(管理员)
// @Summary      删除分类
// @Tags         目录模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Router       /admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogUseCase.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func bindAuthorRequest(c *gin.Context) (catalog.AuthorRequest, bool) {
	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return catalog.AuthorRequest{}, false
	}

	return catalog.AuthorRequest{
		Name:        req.Name,
		Gender:      req.Gender,
		Age:         req.Age,
		Country:     req.Country,
		City:        req.City,
		Description: req.Description,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Website:     req.Website,
		ImagePath:   req.ImagePath,
	}, true
}

func toAuthorResponse(a *author.Author) *dto.AuthorResponse {
	return &dto.AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Gender:      a.Gender,
		Age:         a.Age,
		Country:     a.Country,
		City:        a.City,
		Description: a.Description,
		PhoneNumber: a.PhoneNumber,
		Email:       a.Email,
		Website:     a.Website,
		ImagePath:   a.ImagePath,
	}
}

func toCategoryResponse(cat *category.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:   cat.ID,
		Name: cat.Name,
	}
}
