package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bedoax/bookstore/pkg/errors"
	"github.com/bedoax/bookstore/pkg/jwt"
)

func TestSessionStore_Session(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	data := map[string]interface{}{
		"login_at": time.Now().Format(time.RFC3339),
		"ip":       "127.0.0.1",
	}

	t.Run("保存后可读取", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, jwt.RoleCustomer, 1, data, time.Hour))

		got, err := store.GetSession(ctx, jwt.RoleCustomer, 1)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", got["ip"])
	})

	t.Run("不同角色同ID的会话互不干扰", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, jwt.RoleCustomer, 3, data, time.Hour))

		// customer#3 登录不代表 admin#3 登录
		_, err := store.GetSession(ctx, jwt.RoleAdmin, 3)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetAppError(err).Code)
	})

	t.Run("删除后视为未登录", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, jwt.RoleCustomer, 2, data, time.Hour))
		require.NoError(t, store.DeleteSession(ctx, jwt.RoleCustomer, 2))

		_, err := store.GetSession(ctx, jwt.RoleCustomer, 2)
		require.Error(t, err)
	})

	t.Run("过期后视为未登录", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, jwt.RoleCustomer, 4, data, time.Minute))
		mr.FastForward(2 * time.Minute)

		_, err := store.GetSession(ctx, jwt.RoleCustomer, 4)
		require.Error(t, err)
	})
}

func TestSessionStore_Blacklist(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	t.Run("加入黑名单后命中", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "token-a", time.Hour))

		ok, err := store.IsInBlacklist(ctx, "token-a")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("未加入黑名单不命中", func(t *testing.T) {
		ok, err := store.IsInBlacklist(ctx, "token-b")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("黑名单随Token有效期过期", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "token-c", time.Minute))
		mr.FastForward(2 * time.Minute)

		ok, err := store.IsInBlacklist(ctx, "token-c")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
