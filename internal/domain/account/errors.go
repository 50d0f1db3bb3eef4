package account

import (
	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// 账户领域错误定义
var (
	// ErrCustomerNotFound 客户不存在
	ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "客户不存在")

	// ErrAdminNotFound 管理员不存在
	ErrAdminNotFound = apperrors.New(apperrors.ErrCodeAdminNotFound, "管理员不存在")

	// ErrUsernameDuplicate 用户名已存在
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "用户名已被注册")

	// ErrInsufficientBalance 余额不足
	ErrInsufficientBalance = apperrors.New(apperrors.ErrCodeInsufficientBalance, "余额不足，无法完成本次订单")

	// ErrInvalidAmount 无效的金额
	ErrInvalidAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "金额必须大于0")

	// ErrInvalidPassword 密码错误
	ErrInvalidPassword = apperrors.New(apperrors.ErrCodeInvalidPassword, "用户名或密码错误")
)
