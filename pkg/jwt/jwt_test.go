package jwt

import (
	"testing"
	"time"

	apperrors "github.com/bedoax/bookstore/pkg/errors"
)

// TestGenerateAndParseToken 测试Token生成与解析的往返
func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret-key-for-unit-test", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "alice", RoleCustomer)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token不应为空")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("过期时间错误: %d", pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID期望42，实际%d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username期望alice，实际%s", claims.Username)
	}
	if claims.Role != RoleCustomer {
		t.Errorf("Role期望%s，实际%s", RoleCustomer, claims.Role)
	}
}

// TestParseToken_WrongSecret 测试错误密钥签发的Token被拒绝
func TestParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", time.Hour, time.Hour)
	m2 := NewManager("secret-two", time.Hour, time.Hour)

	pair, err := m1.GenerateToken(1, "bob", RoleAdmin)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m2.ParseToken(pair.AccessToken); err != apperrors.ErrInvalidToken {
		t.Errorf("期望ErrInvalidToken，实际: %v", err)
	}
}

// TestParseToken_Expired 测试过期Token
func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)

	pair, err := m.GenerateToken(1, "carol", RoleCustomer)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m.ParseToken(pair.AccessToken); err != apperrors.ErrTokenExpired {
		t.Errorf("期望ErrTokenExpired，实际: %v", err)
	}
}

// TestRefreshAccessToken_Expired 测试过期的Refresh Token刷新被拒
// 过期必须报ErrTokenExpired而不是ErrInvalidToken,客户端依赖这个区分决定是否重新登录
func TestRefreshAccessToken_Expired(t *testing.T) {
	m := NewManager("test-secret", time.Hour, -time.Minute)

	pair, err := m.GenerateToken(3, "erin", RoleCustomer)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m.RefreshAccessToken(pair.RefreshToken); err != apperrors.ErrTokenExpired {
		t.Errorf("期望ErrTokenExpired，实际: %v", err)
	}
}

// TestRefreshAccessToken 测试Token刷新保留角色
func TestRefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken(7, "dave", RoleAdmin)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newAccess)
	if err != nil {
		t.Fatalf("解析新Token失败: %v", err)
	}
	if claims.UserID != 7 || claims.Role != RoleAdmin {
		t.Errorf("刷新后Claims错误: %+v", claims)
	}
}
