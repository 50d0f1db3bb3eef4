package dto

// RegisterRequest HTTP注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"frank"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"Passw0rd123"`
	Name     string `json:"name" binding:"required,max=100" example:"Frank Herbert"`
	Email    string `json:"email" binding:"required,email" example:"frank@example.com"`
}

// RegisterResponse HTTP注册响应
type RegisterResponse struct {
	CustomerID uint   `json:"customer_id" example:"1"`
	Username   string `json:"username" example:"frank"`
	Name       string `json:"name" example:"Frank Herbert"`
}

// LoginRequest HTTP登录请求(客户与管理员共用)
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"frank"`
	Password string `json:"password" binding:"required" example:"Passw0rd123"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	UserID       uint   `json:"user_id" example:"1"`
	Username     string `json:"username" example:"frank"`
	Name         string `json:"name" example:"Frank Herbert"`
	Role         string `json:"role" example:"Customer"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in" example:"7200"` // Access Token有效期(秒)
}

// RefreshTokenRequest HTTP刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse HTTP刷新Token响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// CustomerResponse HTTP客户信息响应
type CustomerResponse struct {
	ID          uint   `json:"id" example:"1"`
	Username    string `json:"username" example:"frank"`
	Name        string `json:"name" example:"Frank Herbert"`
	PhoneNumber string `json:"phone_number" example:"13800138000"`
	Email       string `json:"email" example:"frank@example.com"`
	Balance     int64  `json:"balance" example:"10000"`       // 余额(分)
	BalanceYuan string `json:"balance_yuan" example:"100.00"` // 余额(元)
	Gender      string `json:"gender" example:"Male"`
	Age         int    `json:"age" example:"45"`
	Country     string `json:"country" example:"USA"`
	City        string `json:"city" example:"Tacoma"`
	Street      string `json:"street" example:"Main St 1"`
	Description string `json:"description"`
}

// UpdateProfileRequest HTTP资料更新请求
// 零值字段不修改
type UpdateProfileRequest struct {
	Name        string `json:"name" binding:"omitempty,max=100"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	Gender      string `json:"gender" binding:"omitempty,max=10"`
	Country     string `json:"country" binding:"omitempty,max=100"`
	City        string `json:"city" binding:"omitempty,max=100"`
	Street      string `json:"street" binding:"omitempty,max=200"`
	Age         int    `json:"age" binding:"omitempty,min=1,max=150"`
}

// TopUpRequest HTTP充值请求(管理员代客充值)
type TopUpRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1,max=100000000" example:"10000"` // 充值金额(分)
}
