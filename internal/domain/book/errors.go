package book

import (
	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrTitleDuplicate 书名已存在
	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeTitleDuplicate, "书名已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")
)

// NewErrBookNotFound 创建携带书名的"图书不存在"错误
// 购书流程按书名定位图书,错误信息需要指明是哪一行的哪本书
func NewErrBookNotFound(title string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeBookNotFound, "图书《%s》不存在", title)
}

// NewErrInsufficientStock 创建携带书名的"库存不足"错误
func NewErrInsufficientStock(title string, stock, want int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
		"图书《%s》库存不足,当前库存:%d,需要:%d", title, stock, want)
}
