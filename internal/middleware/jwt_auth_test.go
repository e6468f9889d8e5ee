package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": GetUsername(c),
			"role":     GetRole(c),
		})
	})
	return r
}

func doAuthRequest(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== Token 生成 / 解析 ====================

func TestGenerateTokenPair_Roundtrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair(42, "admin", "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := ParseToken(access)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "access", claims.Subject)

	refreshClaims, err := ParseToken(refresh)
	assert.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.Subject)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-jwt")
	assert.Error(t, err)
}

// ==================== 认证中间件 ====================

func TestJWTAuth(t *testing.T) {
	r := newAuthRouter()
	access, refresh, _ := GenerateTokenPair(1, "admin", "admin")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"无认证头", "", http.StatusUnauthorized},
		{"格式错误", "Token " + access, http.StatusUnauthorized},
		{"伪造 token", "Bearer forged.token.here", http.StatusUnauthorized},
		{"refresh token 访问接口", "Bearer " + refresh, http.StatusUnauthorized},
		{"合法 access token", "Bearer " + access, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAuthRequest(r, tt.authHeader)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestJWTAuth_InjectsContext(t *testing.T) {
	r := newAuthRouter()
	access, _, _ := GenerateTokenPair(7, "operator", "staff")

	w := doAuthRequest(r, "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"operator"`)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin-only", JWTAuth(), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	staffToken, _, _ := GenerateTokenPair(2, "staff_user", "staff")
	adminToken, _, _ := GenerateTokenPair(1, "admin_user", "admin")

	req, _ := http.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
