package account

import (
	"time"
)

// Admin 管理员实体
// 设计说明:与Customer共享Person字段,无额外业务字段
// 管理员权限不存在实体上,而是登录时以角色写入JWT,由接口层中间件校验
type Admin struct {
	ID uint
	Person
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAdmin 创建新管理员(工厂方法)
func NewAdmin(username, hashedPassword, name, email string) *Admin {
	now := time.Now()
	return &Admin{
		Person: Person{
			Username: username,
			Password: hashedPassword,
			Name:     name,
			Email:    email,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
