// Package limiter 提供基于令牌桶的请求限流
package limiter

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// FillInterval 每次填充令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次填充的令牌数
	Quantum int64
}

// ClientLimiter gives every client IP its own bucket, created on first use
// ClientLimiter 按客户端 IP 限流
type ClientLimiter struct {
	rule    BucketRule
	mu      sync.Mutex
	buckets map[string]*ratelimit.Bucket
}

var _ Face = (*ClientLimiter)(nil)

// NewClientLimiter 创建按客户端 IP 的限流器
func NewClientLimiter(rule BucketRule) *ClientLimiter {
	if rule.FillInterval <= 0 {
		rule.FillInterval = time.Second
	}
	if rule.Capacity <= 0 {
		rule.Capacity = 1
	}
	if rule.Quantum <= 0 {
		rule.Quantum = rule.Capacity
	}
	return &ClientLimiter{rule: rule, buckets: make(map[string]*ratelimit.Bucket)}
}

func (l *ClientLimiter) Key(c *gin.Context) string {
	return c.ClientIP()
}

func (l *ClientLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = ratelimit.NewBucketWithQuantum(l.rule.FillInterval, l.rule.Capacity, l.rule.Quantum)
		l.buckets[key] = b
	}
	return b, true
}
