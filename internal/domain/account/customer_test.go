package account

import (
	"testing"
)

// TestCustomerDebit 测试余额扣减的业务规则
func TestCustomerDebit(t *testing.T) {
	t.Run("正常扣减", func(t *testing.T) {
		c := NewCustomer("alice", "hashed", "Alice", "alice@example.com")
		c.Balance = 10000 // 100.00元

		if err := c.Debit(6000); err != nil {
			t.Fatalf("扣减失败: %v", err)
		}
		if c.Balance != 4000 {
			t.Errorf("余额期望4000，实际%d", c.Balance)
		}
	})

	t.Run("余额不足拒绝扣减", func(t *testing.T) {
		c := NewCustomer("bob", "hashed", "Bob", "")
		c.Balance = 5000

		if err := c.Debit(6000); err != ErrInsufficientBalance {
			t.Errorf("期望ErrInsufficientBalance，实际: %v", err)
		}
		// 失败不应有副作用
		if c.Balance != 5000 {
			t.Errorf("失败后余额应保持5000，实际%d", c.Balance)
		}
	})

	t.Run("扣至零元允许", func(t *testing.T) {
		c := NewCustomer("carol", "hashed", "Carol", "")
		c.Balance = 5000

		if err := c.Debit(5000); err != nil {
			t.Fatalf("扣至零元应成功: %v", err)
		}
		if c.Balance != 0 {
			t.Errorf("余额期望0，实际%d", c.Balance)
		}
	})

	t.Run("非法金额", func(t *testing.T) {
		c := NewCustomer("dave", "hashed", "Dave", "")
		c.Balance = 5000

		if err := c.Debit(0); err != ErrInvalidAmount {
			t.Errorf("期望ErrInvalidAmount，实际: %v", err)
		}
		if err := c.Debit(-100); err != ErrInvalidAmount {
			t.Errorf("期望ErrInvalidAmount，实际: %v", err)
		}
	})
}

// TestCustomerCredit 测试充值
func TestCustomerCredit(t *testing.T) {
	c := NewCustomer("eve", "hashed", "Eve", "")

	if err := c.Credit(10000); err != nil {
		t.Fatalf("充值失败: %v", err)
	}
	if c.Balance != 10000 {
		t.Errorf("余额期望10000，实际%d", c.Balance)
	}

	if err := c.Credit(0); err != ErrInvalidAmount {
		t.Errorf("期望ErrInvalidAmount，实际: %v", err)
	}
}

// TestCanAfford 测试余额判断
func TestCanAfford(t *testing.T) {
	c := NewCustomer("frank", "hashed", "Frank", "")
	c.Balance = 10000

	if !c.CanAfford(10000) {
		t.Error("余额恰好等于金额应可支付")
	}
	if c.CanAfford(10001) {
		t.Error("余额不足不应可支付")
	}
}
