package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// ==================== 限流检查 ====================

func TestMutationRateLimiter_Check(t *testing.T) {
	limiter := &MutationRateLimiter{}
	key := MutationKey("prescription", 1, "status")

	first := limiter.Check(key, 100*time.Millisecond)
	assert.True(t, first.Allowed)

	// 冷却期内第二次被拒，并给出剩余时间
	second := limiter.Check(key, 100*time.Millisecond)
	assert.False(t, second.Allowed)
	assert.Greater(t, second.RetryAfter, time.Duration(0))

	// 不同 key 互不影响
	other := limiter.Check(MutationKey("prescription", 2, "status"), 100*time.Millisecond)
	assert.True(t, other.Allowed)

	time.Sleep(110 * time.Millisecond)
	third := limiter.Check(key, 100*time.Millisecond)
	assert.True(t, third.Allowed)
}

// ==================== Gin 中间件 ====================

func TestThrottleMutations(t *testing.T) {
	r := gin.New()
	// 用独立路径避免和全局限流器里其他测试的 key 撞上
	r.POST("/throttled", ThrottleMutations(200*time.Millisecond), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/throttled", ThrottleMutations(200*time.Millisecond), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	post := func() int {
		req, _ := http.NewRequest(http.MethodPost, "/throttled", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// GET 不限流
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/throttled", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
