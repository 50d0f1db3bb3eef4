package account

// Person 人员共享字段(值对象)
// 设计说明:
// 1. Admin与Customer共享的身份字段,以嵌入值的方式复用
// 2. 避免深继承链:角色差异通过各自实体的扩展字段表达,角色本身随Token下发
// 3. Password存bcrypt哈希,领域层不出现明文
type Person struct {
	Username    string // 登录用户名(唯一)
	Password    string // bcrypt哈希值
	Name        string // 姓名
	PhoneNumber string // 电话
	Email       string // 邮箱
}
