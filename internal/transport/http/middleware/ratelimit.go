package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "rizal-api/internal/transport/http/response"
)

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		tooMany(c)
	}
}

// 空闲超过该时长的 IP 桶会被回收
const ipIdleTTL = 10 * time.Minute

// RateLimitPerIP 每 IP 限速
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	b := newIPBuckets(rps, burst, ipIdleTTL, time.Now)
	return func(c *gin.Context) {
		if b.allow(c.ClientIP()) {
			c.Next()
			return
		}
		tooMany(c)
	}
}

type ipBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type ipBuckets struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	buckets   map[string]*ipBucket
}

func newIPBuckets(rps rate.Limit, burst int, ttl time.Duration, now func() time.Time) *ipBuckets {
	return &ipBuckets{
		rps: rps, burst: burst, ttl: ttl, now: now,
		lastSweep: now(),
		buckets:   make(map[string]*ipBucket),
	}
}

func (b *ipBuckets) allow(ip string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	// 惰性清理：每个 ttl 周期最多扫一次
	if now.Sub(b.lastSweep) >= b.ttl {
		for k, v := range b.buckets {
			if now.Sub(v.lastSeen) >= b.ttl {
				delete(b.buckets, k)
			}
		}
		b.lastSweep = now
	}

	e, ok := b.buckets[ip]
	if !ok {
		e = &ipBucket{lim: rate.NewLimiter(b.rps, b.burst)}
		b.buckets[ip] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1)
}

func (b *ipBuckets) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buckets)
}

func tooMany(c *gin.Context) {
	c.AbortWithStatusJSON(resp.CodeTooManyRequests, resp.Error(resp.CodeTooManyRequests, "too many requests"))
}
