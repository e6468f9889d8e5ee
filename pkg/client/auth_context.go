package client

import (
	"encoding/json"
	"os"
	"sync"
)

// ==================== 会话上下文 ====================

// AuthContext 显式的会话上下文对象
// 不做包级单例：谁构造 Client 谁持有它，生命周期一目了然。
// Hydrate 启动时从持久化文件恢复，Clear 登出或 401 时清空。
type AuthContext struct {
	mu    sync.RWMutex
	token string
	path  string // 持久化文件路径，空 = 纯内存
}

// 持久化文件结构，沿用前端 localStorage 的 "auth-storage" 形状
type authStorage struct {
	State struct {
		Token string `json:"token"`
	} `json:"state"`
}

// NewAuthContext 创建会话上下文
// path 为持久化文件路径，传空则只存内存
func NewAuthContext(path string) *AuthContext {
	return &AuthContext{path: path}
}

// Hydrate 从持久化文件恢复 token；文件不存在不算错
func (a *AuthContext) Hydrate() error {
	if a.path == "" {
		return nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var stored authStorage
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	a.mu.Lock()
	a.token = stored.State.Token
	a.mu.Unlock()
	return nil
}

// Token 当前 token，空串表示未登录
func (a *AuthContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// SetToken 登录成功后写入并落盘
func (a *AuthContext) SetToken(token string) error {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	if a.path == "" {
		return nil
	}
	var stored authStorage
	stored.State.Token = token
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return os.WriteFile(a.path, data, 0o600)
}

// Clear 清空会话 (登出 / 收到 401)
func (a *AuthContext) Clear() {
	a.mu.Lock()
	a.token = ""
	a.mu.Unlock()

	if a.path != "" {
		_ = os.Remove(a.path)
	}
}
