package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bedoax/bookstore/internal/domain/account"
	"github.com/bedoax/bookstore/internal/domain/book"
)

// newMockDB 基于sqlmock构造gorm连接
// 真实MySQL无法按需制造查询故障,这类错误路径只能用mock驱动
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// TestUpdateStock_RowsAffectedZero 测试库存UPDATE未命中行时的错误区分
func TestUpdateStock_RowsAffectedZero(t *testing.T) {
	ctx := context.Background()

	t.Run("图书存在时返回库存不足", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		mock.ExpectExec("UPDATE `books` SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

		err := repo.UpdateStock(ctx, 1, -3)
		require.ErrorIs(t, err, book.ErrInsufficientStock)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("图书不存在时返回未找到", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		mock.ExpectExec("UPDATE `books` SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

		err := repo.UpdateStock(ctx, 1, -3)
		require.ErrorIs(t, err, book.ErrBookNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("区分查询失败时原样上抛数据库错误", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		dbErr := errors.New("driver: bad connection")
		mock.ExpectExec("UPDATE `books` SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT count").WillReturnError(dbErr)

		err := repo.UpdateStock(ctx, 1, -3)
		require.ErrorIs(t, err, dbErr)
		require.NotErrorIs(t, err, book.ErrInsufficientStock)
		require.NotErrorIs(t, err, book.ErrBookNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestDebit_RowsAffectedZero 测试扣款UPDATE未命中行时的错误区分
func TestDebit_RowsAffectedZero(t *testing.T) {
	ctx := context.Background()

	t.Run("客户存在时返回余额不足", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCustomerRepository(db)

		mock.ExpectExec("UPDATE `customers` SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

		err := repo.Debit(ctx, 1, 5000)
		require.ErrorIs(t, err, account.ErrInsufficientBalance)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("区分查询失败时原样上抛数据库错误", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCustomerRepository(db)

		dbErr := errors.New("driver: bad connection")
		mock.ExpectExec("UPDATE `customers` SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT count").WillReturnError(dbErr)

		err := repo.Debit(ctx, 1, 5000)
		require.ErrorIs(t, err, dbErr)
		require.NotErrorIs(t, err, account.ErrInsufficientBalance)
		require.NotErrorIs(t, err, account.ErrCustomerNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
