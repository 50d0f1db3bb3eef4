package account

import (
	"time"
)

// Customer 客户实体(聚合根)
// DDD设计说明:
// 1. 嵌入Person共享身份字段,扩展余额与画像字段
// 2. 余额使用int64存储"分"为单位(与图书价格同一货币表示)
// 3. 余额不变量:任何时刻Balance >= 0,由Debit方法与仓储层双重保证
type Customer struct {
	ID uint
	Person
	Balance     int64  // 账户余额(分)
	Gender      string // 性别
	Age         int    // 年龄
	Country     string // 国家
	City        string // 城市
	Street      string // 街道
	Description string // 备注
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCustomer 创建新客户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewCustomer(username, hashedPassword, name, email string) *Customer {
	now := time.Now()
	return &Customer{
		Person: Person{
			Username: username,
			Password: hashedPassword,
			Name:     name,
			Email:    email,
		},
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Debit 扣减余额(领域行为,用于购书)
// 业务规则:扣减后余额不能为负数
func (c *Customer) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if c.Balance < amount {
		return ErrInsufficientBalance
	}
	c.Balance -= amount
	c.UpdatedAt = time.Now()
	return nil
}

// Credit 充值余额(领域行为,管理员代客充值)
func (c *Customer) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	c.Balance += amount
	c.UpdatedAt = time.Now()
	return nil
}

// CanAfford 判断余额是否足以支付金额
func (c *Customer) CanAfford(amount int64) bool {
	return c.Balance >= amount
}

// UpdateProfile 更新客户画像信息
// 空字符串/零值表示不修改对应字段
func (c *Customer) UpdateProfile(name, phone, email, gender, country, city, street string, age int) {
	if name != "" {
		c.Name = name
	}
	if phone != "" {
		c.PhoneNumber = phone
	}
	if email != "" {
		c.Email = email
	}
	if gender != "" {
		c.Gender = gender
	}
	if country != "" {
		c.Country = country
	}
	if city != "" {
		c.City = city
	}
	if street != "" {
		c.Street = street
	}
	if age > 0 {
		c.Age = age
	}
	c.UpdatedAt = time.Now()
}
