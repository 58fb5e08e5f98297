package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// loginLimiter 按客户端 IP 统计窗口内的登录尝试次数
type loginLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration
}

func newLoginLimiter(maxAttempts int, window time.Duration) *loginLimiter {
	l := &loginLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
	}
	go l.pruneLoop()
	return l
}

// allow 记录一次尝试，返回是否放行
func (l *loginLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.recent(ip, now)
	if len(recent) >= l.maxAttempts {
		l.attempts[ip] = recent
		return false
	}
	l.attempts[ip] = append(recent, now)
	return true
}

// recent 返回 ip 在当前窗口内的尝试记录，调用方需持有锁
func (l *loginLimiter) recent(ip string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := l.attempts[ip][:0]
	for _, t := range l.attempts[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// pruneLoop 定期清理已完全过期的 IP，避免 map 无限增长
func (l *loginLimiter) pruneLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip := range l.attempts {
			if recent := l.recent(ip, now); len(recent) == 0 {
				delete(l.attempts, ip)
			} else {
				l.attempts[ip] = recent
			}
		}
		l.mu.Unlock()
	}
}

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := newLoginLimiter(maxAttempts, window)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
