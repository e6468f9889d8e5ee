package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== MutationRateLimiter 变更限流器 ====================

// MutationRateLimiter 破坏性操作限流器
// 处方状态流转、批量删除这类操作点快了会重复提交，按 key 做冷却
type MutationRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &MutationRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *MutationRateLimiter {
	return globalLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "prescription:123:status"
// interval: 冷却间隔
func (r *MutationRateLimiter) Check(key string, interval time.Duration) CheckResult {
	// 获取或创建锁条目
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	// 更新最后执行时间
	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// MutationKey 拼限流键
func MutationKey(resource string, id int64, action string) string {
	return fmt.Sprintf("%s:%d:%s", resource, id, action)
}

// ==================== Gin 中间件 ====================

// ThrottleMutations 变更接口防重复提交
// 按 用户+方法+路径 做冷却，GET 不限
func ThrottleMutations(interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s:%s", GetUsername(c), c.Request.Method, c.FullPath())
		result := globalLimiter.Check(key, interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("操作过于频繁，请 %.1f 秒后重试", result.RetryAfter.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
