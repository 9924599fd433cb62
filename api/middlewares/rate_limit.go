package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and the last time we saw this IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	every time.Duration
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter(every time.Duration, burst int) *RateLimiter {
	return &RateLimiter{
		every:    every,
		burst:    burst,
		visitors: make(map[string]*visitor),
	}
}

// NewGeneralLimiter is applied to every route: 1 request/second average, burst of 100.
func NewGeneralLimiter() *RateLimiter {
	return NewRateLimiter(time.Second, 100)
}

// NewLoginLimiter is for login and signup: 1 request every 10 seconds on average, burst of 5.
func NewLoginLimiter() *RateLimiter {
	return NewRateLimiter(10*time.Second, 5)
}

func (l *RateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Every(l.every), l.burst)
		l.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup forgets visitors idle for longer than maxIdle.
func (l *RateLimiter) Cleanup(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if time.Since(v.lastSeen) > maxIdle {
			delete(l.visitors, ip)
		}
	}
}

// Middleware answers 429 once the client's bucket is empty.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			c.String(http.StatusTooManyRequests, "Too many requests. Please slow down.")
			c.Abort()
			return
		}
		c.Next()
	}
}
