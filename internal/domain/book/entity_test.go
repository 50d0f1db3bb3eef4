package book

import (
	"testing"
	"time"
)

func newTestBook(price int64, stock int) *Book {
	return NewBook("测试图书", 1, 1, "9787115428028", "描述", price, stock,
		time.Now(), "测试出版社", "中文", 300)
}

// TestDecrStock 测试库存扣减的业务规则
func TestDecrStock(t *testing.T) {
	t.Run("正常扣减", func(t *testing.T) {
		b := newTestBook(2000, 5)
		if err := b.DecrStock(3); err != nil {
			t.Fatalf("扣减失败: %v", err)
		}
		if b.Stock != 2 {
			t.Errorf("库存期望2，实际%d", b.Stock)
		}
	})

	t.Run("库存不足拒绝扣减", func(t *testing.T) {
		b := newTestBook(2000, 5)
		if err := b.DecrStock(10); err != ErrInsufficientStock {
			t.Errorf("期望ErrInsufficientStock，实际: %v", err)
		}
		// 失败不应有副作用
		if b.Stock != 5 {
			t.Errorf("失败后库存应保持5，实际%d", b.Stock)
		}
	})

	t.Run("非法数量", func(t *testing.T) {
		b := newTestBook(2000, 5)
		if err := b.DecrStock(0); err != ErrInvalidQuantity {
			t.Errorf("期望ErrInvalidQuantity，实际: %v", err)
		}
		if err := b.DecrStock(-1); err != ErrInvalidQuantity {
			t.Errorf("期望ErrInvalidQuantity，实际: %v", err)
		}
	})
}

// TestIncrStock 测试补货
func TestIncrStock(t *testing.T) {
	b := newTestBook(2000, 5)
	if err := b.IncrStock(10); err != nil {
		t.Fatalf("补货失败: %v", err)
	}
	if b.Stock != 15 {
		t.Errorf("库存期望15，实际%d", b.Stock)
	}

	if err := b.IncrStock(0); err != ErrInvalidQuantity {
		t.Errorf("期望ErrInvalidQuantity，实际: %v", err)
	}
}

// TestUpdatePrice 测试价格更新规则
func TestUpdatePrice(t *testing.T) {
	b := newTestBook(2000, 5)

	if err := b.UpdatePrice(0); err != ErrInvalidPrice {
		t.Errorf("价格0应被拒绝，实际: %v", err)
	}
	if err := b.UpdatePrice(-100); err != ErrInvalidPrice {
		t.Errorf("负价格应被拒绝，实际: %v", err)
	}
	if err := b.UpdatePrice(3500); err != nil {
		t.Fatalf("更新价格失败: %v", err)
	}
	if b.Price != 3500 {
		t.Errorf("价格期望3500，实际%d", b.Price)
	}
}

// TestLineTotal 测试行金额计算(分)
func TestLineTotal(t *testing.T) {
	b := newTestBook(2000, 5) // 20.00元
	if got := b.LineTotal(3); got != 6000 {
		t.Errorf("3本金额期望6000分，实际%d", got)
	}
}
