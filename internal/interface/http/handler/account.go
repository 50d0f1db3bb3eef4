package handler

import (
	"github.com/gin-gonic/gin"

	appaccount "github.com/bedoax/bookstore/internal/application/account"
	"github.com/bedoax/bookstore/internal/interface/http/dto"
	"github.com/bedoax/bookstore/internal/interface/http/middleware"
	apperrors "github.com/bedoax/bookstore/pkg/errors"
	"github.com/bedoax/bookstore/pkg/jwt"
	"github.com/bedoax/bookstore/pkg/response"
)

// AccountHandler 账户HTTP处理器
// 注册、登录、登出、Token刷新、客户资料
type AccountHandler struct {
	registerUseCase *appaccount.RegisterCustomerUseCase
	loginUseCase    *appaccount.LoginUseCase
	logoutUseCase   *appaccount.LogoutUseCase
	profileUseCase  *appaccount.ProfileUseCase
	jwtManager      *jwt.Manager
}

// NewAccountHandler 创建账户处理器
func NewAccountHandler(
	registerUseCase *appaccount.RegisterCustomerUseCase,
	loginUseCase *appaccount.LoginUseCase,
	logoutUseCase *appaccount.LogoutUseCase,
	profileUseCase *appaccount.ProfileUseCase,
	jwtManager *jwt.Manager,
) *AccountHandler {
	return &AccountHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		profileUseCase:  profileUseCase,
		jwtManager:      jwtManager,
	}
}

// Register 客户注册
// @Summary      客户注册
// @Tags         账户模块
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=dto.RegisterResponse}
// @Failure      200 {object} response.Response "40003用户名已存在 40005密码强度不足"
// @Router       /auth/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appaccount.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RegisterResponse{
		CustomerID: result.CustomerID,
		Username:   result.Username,
		Name:       result.Name,
	})
}

// LoginCustomer 客户登录
// @Summary      客户登录
// @Tags         账户模块
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Router       /auth/login [post]
func (h *AccountHandler) LoginCustomer(c *gin.Context) {
	h.login(c, false)
}

// LoginAdmin 管理员登录
// @Summary      管理员登录
// @Tags         账户模块
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Router       /auth/admin/login [post]
func (h *AccountHandler) LoginAdmin(c *gin.Context) {
	h.login(c, true)
}

func (h *AccountHandler) login(c *gin.Context, asAdmin bool) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	loginReq := appaccount.LoginRequest{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	}

	var result *appaccount.LoginResponse
	var err error
	if asAdmin {
		result, err = h.loginUseCase.ExecuteAdmin(c.Request.Context(), loginReq)
	} else {
		result, err = h.loginUseCase.ExecuteCustomer(c.Request.Context(), loginReq)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		UserID:       result.UserID,
		Username:     result.Username,
		Name:         result.Name,
		Role:         result.Role,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout 登出
// @Summary      登出
// @Description  删除会话并将当前Access Token加入黑名单
// @Tags         账户模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /auth/logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	role := middleware.GetRole(c)
	token := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), role, userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// RefreshToken 刷新Access Token
// @Summary      刷新Access Token
// @Tags         账户模块
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=dto.RefreshTokenResponse}
// @Router       /auth/refresh [post]
func (h *AccountHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	accessToken, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RefreshTokenResponse{AccessToken: accessToken})
}

// GetProfile 查询我的资料
// @Summary      查询我的资料
// @Tags         账户模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Router       /customers/me [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	customerID := middleware.MustGetUserID(c)

	info, err := h.profileUseCase.Get(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCustomerResponse(info))
}

// UpdateProfile 更新我的资料
// @Summary      更新我的资料
// @Tags         账户模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "资料"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Router       /customers/me [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	customerID := middleware.MustGetUserID(c)

	info, err := h.profileUseCase.Update(c.Request.Context(), customerID, appaccount.UpdateRequest{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Gender:      req.Gender,
		Country:     req.Country,
		City:        req.City,
		Street:      req.Street,
		Age:         req.Age,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCustomerResponse(info))
}

// ListCustomers 客户列表(管理员)
// @Summary      客户列表
// @Tags         账户模块
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /admin/customers [get]
func (h *AccountHandler) ListCustomers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	infos, total, err := h.profileUseCase.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.CustomerResponse, len(infos))
	for i, info := range infos {
		list[i] = toCustomerResponse(info)
	}
	response.SuccessWithPage(c, list, total, page, pageSize)
}

// GetCustomer 查询客户(管理员)
// @Summary      查询客户
// @Tags         账户模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Router       /admin/customers/{id} [get]
func (h *AccountHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	info, err := h.profileUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCustomerResponse(info))
}

// CreateCustomer 创建客户(管理员)
// 与自助注册走同一校验路径(用户名格式、密码强度、用户名唯一)
// @Summary      创建客户
// @Tags         账户模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RegisterRequest true "客户信息"
// @Success      200 {object} response.Response{data=dto.RegisterResponse}
// @Failure      200 {object} response.Response "40003用户名已存在 40005密码强度不足"
// @Router       /admin/customers [post]
func (h *AccountHandler) CreateCustomer(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appaccount.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RegisterResponse{
		CustomerID: result.CustomerID,
		Username:   result.Username,
		Name:       result.Name,
	})
}

// UpdateCustomer 更新客户资料(管理员)
// 只更新资料字段,余额变动必须走充值接口
// @Summary      更新客户资料
// @Tags         账户模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Param        request body dto.UpdateProfileRequest true "资料"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Router       /admin/customers/{id} [put]
func (h *AccountHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	info, err := h.profileUseCase.Update(c.Request.Context(), id, appaccount.UpdateRequest{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Gender:      req.Gender,
		Country:     req.Country,
		City:        req.City,
		Street:      req.Street,
		Age:         req.Age,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCustomerResponse(info))
}

// TopUp 充值(管理员代客充值)
// @Summary      客户充值
// @Tags         账户模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Param        request body dto.TopUpRequest true "充值金额(分)"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Router       /admin/customers/{id}/topup [post]
func (h *AccountHandler) TopUp(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	info, err := h.profileUseCase.TopUp(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCustomerResponse(info))
}

// DeleteCustomer 删除客户(管理员)
// @Summary      删除客户
// @Tags         账户模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response
// @Router       /admin/customers/{id} [delete]
func (h *AccountHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.profileUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toCustomerResponse(info *appaccount.CustomerInfo) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:          info.ID,
		Username:    info.Username,
		Name:        info.Name,
		PhoneNumber: info.PhoneNumber,
		Email:       info.Email,
		Balance:     info.Balance,
		BalanceYuan: info.BalanceYuan,
		Gender:      info.Gender,
		Age:         info.Age,
		Country:     info.Country,
		City:        info.City,
		Street:      info.Street,
		Description: info.Description,
	}
}
