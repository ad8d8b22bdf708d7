package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket 实现令牌桶算法的限流器
type TokenBucket struct {
	rate           float64    // 每秒生成的令牌数
	capacity       float64    // 桶的容量
	tokens         float64    // 当前令牌数
	lastRefillTime time.Time  // 上次填充令牌的时间
	mutex          sync.Mutex // 互斥锁，保证并发安全
}

// NewTokenBucket 创建一个新的令牌桶限流器
func NewTokenBucket(qpm int, capacity int) *TokenBucket {
	// 如果未指定容量，设置为QPM的一半
	if capacity <= 0 {
		capacity = qpm / 2
		if capacity <= 0 {
			capacity = 1
		}
	}

	return &TokenBucket{
		rate:           float64(qpm) / 60.0, // 转换为每秒速率
		capacity:       float64(capacity),
		tokens:         float64(capacity), // 初始填满
		lastRefillTime: time.Now(),
	}
}

// refill 根据经过的时间填充令牌
func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefillTime).Seconds()
	tb.lastRefillTime = now

	// 计算新增令牌数
	newTokens := elapsed * tb.rate

	// 更新当前令牌数，不超过容量
	if tb.tokens+newTokens > tb.capacity {
		tb.tokens = tb.capacity
	} else {
		tb.tokens += newTokens
	}
}

// Allow 判断是否允许通过一个请求，消耗一个令牌
func (tb *TokenBucket) Allow() bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.refill()
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Wait 等待直到有令牌可用
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mutex.Lock()
		tb.refill()

		if tb.tokens >= 1.0 {
			tb.tokens -= 1.0
			tb.mutex.Unlock()
			return nil
		}

		// 计算需要等待的时间
		waitTime := time.Duration((1.0 - tb.tokens) / tb.rate * float64(time.Second))
		tb.mutex.Unlock()

		// 使用定时器或上下文等待
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
			// 继续尝试获取令牌
		}
	}
}

// PerClientLimiter 按客户端标识(通常是IP)维护独立的令牌桶
type PerClientLimiter struct {
	qpm      int
	capacity int
	buckets  map[string]*clientBucket
	mutex    sync.Mutex
}

type clientBucket struct {
	bucket   *TokenBucket
	lastSeen time.Time
}

// staleClientTTL 超过该时长未出现的客户端桶会被清理
const staleClientTTL = 10 * time.Minute

// NewPerClientLimiter 创建按客户端限流器
func NewPerClientLimiter(qpm int, capacity int) *PerClientLimiter {
	l := &PerClientLimiter{
		qpm:      qpm,
		capacity: capacity,
		buckets:  make(map[string]*clientBucket),
	}

	// 后台定期清理不活跃客户端的桶
	go func() {
		ticker := time.NewTicker(staleClientTTL)
		defer ticker.Stop()
		for range ticker.C {
			l.prune()
		}
	}()

	return l
}

// Allow 判断客户端的本次请求是否允许通过
func (l *PerClientLimiter) Allow(clientID string) bool {
	l.mutex.Lock()
	cb, ok := l.buckets[clientID]
	if !ok {
		cb = &clientBucket{bucket: NewTokenBucket(l.qpm, l.capacity)}
		l.buckets[clientID] = cb
	}
	cb.lastSeen = time.Now()
	l.mutex.Unlock()

	return cb.bucket.Allow()
}

// prune 清理长时间不活跃的客户端桶
func (l *PerClientLimiter) prune() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	cutoff := time.Now().Add(-staleClientTTL)
	for id, cb := range l.buckets {
		if cb.lastSeen.Before(cutoff) {
			delete(l.buckets, id)
		}
	}
}
