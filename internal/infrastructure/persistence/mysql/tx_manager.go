package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 教学要点：
// 1. 在application层控制事务边界，让"一次购书"的库存扣减、台账写入、扣款
//    要么全部成功，要么全部回滚
// 2. 通过context传递事务对象，repository对事务无感知
// 3. 回调返回error即回滚，返回nil即提交（依赖GORM的Transaction封装）
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 在事务中执行函数
// 用法：
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 这里的所有repository操作都在同一个事务中
//	    if err := bookRepo.UpdateStock(ctx, bookID, -qty); err != nil {
//	        return err // 返回错误会自动回滚
//	    }
//	    return orderRepo.Append(ctx, record) // 返回nil会自动提交
//	})
func (tm *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务对象放入context
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}

// getDB 从context获取数据库连接
// 如果context中有事务对象，使用事务；否则使用普通连接
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
