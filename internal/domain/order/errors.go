package order

import (
	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidPurchaseLines 购书明细不合法
	ErrInvalidPurchaseLines = apperrors.New(apperrors.ErrCodeInvalidParams, "购书明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
)
