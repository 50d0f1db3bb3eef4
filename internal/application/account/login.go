package account

import (
	"context"
	"log"
	"time"

	"github.com/bedoax/bookstore/internal/domain/account"
	"github.com/bedoax/bookstore/internal/infrastructure/persistence/redis"
	"github.com/bedoax/bookstore/pkg/jwt"
)

// LoginUseCase 登录用例(客户与管理员共用)
// 设计说明：
// 1. 验证用户名密码（调用领域服务）
// 2. 生成JWT Token对，角色写入Claims
// 3. 保存会话到Redis（有效期与Refresh Token一致）
type LoginUseCase struct {
	accountService     account.Service
	jwtManager         *jwt.Manager
	sessionStore       *redis.SessionStore
	refreshTokenExpire time.Duration
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	accountService account.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	refreshTokenExpire time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		accountService:     accountService,
		jwtManager:         jwtManager,
		sessionStore:       sessionStore,
		refreshTokenExpire: refreshTokenExpire,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	IP       string // 请求来源IP,写入会话便于审计
}

// LoginResponse 登录响应
type LoginResponse struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// ExecuteCustomer 客户登录
func (uc *LoginUseCase) ExecuteCustomer(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	customer, err := uc.accountService.LoginCustomer(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return uc.issueTokens(ctx, customer.ID, customer.Username, customer.Name, jwt.RoleCustomer, req.IP)
}

// ExecuteAdmin 管理员登录
func (uc *LoginUseCase) ExecuteAdmin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := uc.accountService.LoginAdmin(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return uc.issueTokens(ctx, admin.ID, admin.Username, admin.Name, jwt.RoleAdmin, req.IP)
}

func (uc *LoginUseCase) issueTokens(ctx context.Context, userID uint, username, name, role, ip string) (*LoginResponse, error) {
	tokenPair, err := uc.jwtManager.GenerateToken(userID, username, role)
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"login_at": time.Now().Unix(),
		"ip":       ip,
	}

	// 会话保存失败不阻断登录:JWT本身已可用,只是失去主动下线能力
	if err := uc.sessionStore.SaveSession(ctx, role, userID, sessionData, uc.refreshTokenExpire); err != nil {
		log.Printf("保存会话失败: user_id=%d, err=%v", userID, err)
	}

	return &LoginResponse{
		UserID:       userID,
		Username:     username,
		Name:         name,
		Role:         role,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	sessionStore      *redis.SessionStore
	accessTokenExpire time.Duration
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore, accessTokenExpire time.Duration) *LogoutUseCase {
	return &LogoutUseCase{
		sessionStore:      sessionStore,
		accessTokenExpire: accessTokenExpire,
	}
}

// Execute 执行登出
// 1. 删除会话
// 2. Access Token加入黑名单,防止过期前继续使用
func (uc *LogoutUseCase) Execute(ctx context.Context, role string, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, role, userID); err != nil {
		return err
	}

	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.accessTokenExpire)
}
