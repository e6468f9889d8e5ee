package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// ==================== 测试辅助 ====================

func newTestAuth(t *testing.T) *AuthContext {
	t.Helper()
	path := filepath.Join(t.TempDir(), "auth-storage.json")
	return NewAuthContext(path)
}

// ==================== 会话上下文 ====================

func TestAuthContext_PersistAndHydrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-storage.json")

	auth := NewAuthContext(path)
	if err := auth.SetToken("tok-123"); err != nil {
		t.Fatalf("写入 token 失败: %v", err)
	}

	// 新实例从同一路径恢复
	restored := NewAuthContext(path)
	if err := restored.Hydrate(); err != nil {
		t.Fatalf("恢复失败: %v", err)
	}
	if restored.Token() != "tok-123" {
		t.Fatalf("恢复的 token 不匹配: %q", restored.Token())
	}

	// 持久化形状和前端 localStorage 保持一致
	data, _ := os.ReadFile(path)
	var stored map[string]map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("持久化文件不是合法 JSON: %v", err)
	}
	if stored["state"]["token"] != "tok-123" {
		t.Fatalf("持久化形状错误: %s", data)
	}
}

func TestAuthContext_HydrateMissingFile(t *testing.T) {
	auth := NewAuthContext(filepath.Join(t.TempDir(), "nope.json"))
	if err := auth.Hydrate(); err != nil {
		t.Fatalf("文件不存在不应报错: %v", err)
	}
	if auth.Token() != "" {
		t.Fatal("无持久化时 token 应为空")
	}
}

func TestAuthContext_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-storage.json")
	auth := NewAuthContext(path)
	_ = auth.SetToken("tok")

	auth.Clear()
	if auth.Token() != "" {
		t.Fatal("Clear 后 token 应为空")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("Clear 应删掉持久化文件")
	}
}

// ==================== 请求拦截 ====================

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"ok","data":[]}`))
	}))
	defer srv.Close()

	auth := newTestAuth(t)
	_ = auth.SetToken("tok-abc")
	api := New(srv.URL, auth)

	if _, err := api.List("brands", 0, 0); err != nil {
		t.Fatalf("请求失败: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("应带 Bearer token，得到 %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success","message":"ok","data":[]}`))
	}))
	defer srv.Close()

	api := New(srv.URL, newTestAuth(t))
	_, _ = api.List("brands", 0, 0)

	if gotAuth != "" {
		t.Fatalf("未登录不应带 Authorization，得到 %q", gotAuth)
	}
}

func TestClient_401ClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","message":"Token 无效或已过期"}`))
	}))
	defer srv.Close()

	auth := newTestAuth(t)
	_ = auth.SetToken("expired")

	expiredFired := false
	api := New(srv.URL, auth)
	api.OnSessionExpired = func() { expiredFired = true }

	_, err := api.List("brands", 0, 0)
	if err == nil {
		t.Fatal("401 应返回错误")
	}
	if auth.Token() != "" {
		t.Fatal("401 后会话应被清空")
	}
	if !expiredFired {
		t.Fatal("401 应触发 OnSessionExpired 回调")
	}
}

// ==================== 列表解码 ====================

func TestClient_ListPlainArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "" {
			t.Error("全量拉取不应带 limit")
		}
		w.Write([]byte(`{"status":"success","message":"ok","data":[
			{"id":1,"name":"Bayer"},
			{"id":2,"name":"Acme"}
		]}`))
	}))
	defer srv.Close()

	api := New(srv.URL, newTestAuth(t))
	result, err := api.List("brands", 0, 0)
	if err != nil {
		t.Fatalf("请求失败: %v", err)
	}

	if result.Total != 2 || len(result.Records) != 2 {
		t.Fatalf("纯数组形状解码错误: total=%d len=%d", result.Total, len(result.Records))
	}
	// 数字 id 应归一成字符串
	if result.Records[0].ID() != "1" {
		t.Fatalf("id 应归一为字符串，得到 %q", result.Records[0].ID())
	}
}

func TestClient_ListPagedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "10" || r.URL.Query().Get("offset") != "20" {
			t.Errorf("分页参数错误: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"status":"success","message":"ok","data":{
			"data":[{"id":"21","name":"Item 21"}],
			"total":55
		}}`))
	}))
	defer srv.Close()

	api := New(srv.URL, newTestAuth(t))
	result, err := api.List("products", 10, 20)
	if err != nil {
		t.Fatalf("请求失败: %v", err)
	}

	if result.Total != 55 || len(result.Records) != 1 {
		t.Fatalf("分页形状解码错误: total=%d len=%d", result.Total, len(result.Records))
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status":"error","message":"品牌名称已存在"}`))
	}))
	defer srv.Close()

	api := New(srv.URL, newTestAuth(t))
	_, err := api.Create("brands", map[string]string{"name": "Bayer"})
	if err == nil || err.Error() != "品牌名称已存在" {
		t.Fatalf("应透传服务端 message，得到 %v", err)
	}
}
