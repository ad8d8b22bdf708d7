package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketAllow(t *testing.T) {
	// 容量2, 速率60QPM(每秒1个)
	tb := NewTokenBucket(60, 2)

	assert.True(t, tb.Allow(), "初始桶应是满的")
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow(), "令牌耗尽后应拒绝请求")
}

func TestTokenBucketRefill(t *testing.T) {
	// 每秒600/60=10个令牌
	tb := NewTokenBucket(600, 1)

	require.True(t, tb.Allow())
	require.False(t, tb.Allow())

	// 等待足够的填充时间
	time.Sleep(150 * time.Millisecond)
	assert.True(t, tb.Allow(), "等待后应重新获得令牌")
}

func TestTokenBucketWait(t *testing.T) {
	tb := NewTokenBucket(600, 1)
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	err := tb.Wait(ctx)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestTokenBucketWaitCancelled(t *testing.T) {
	// 速率极低, 等待必然超时
	tb := NewTokenBucket(1, 1)
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTokenBucketDefaultCapacity(t *testing.T) {
	// 未指定容量时取QPM的一半
	tb := NewTokenBucket(10, 0)
	assert.Equal(t, 5.0, tb.capacity)

	// QPM为1时容量保底为1
	tb = NewTokenBucket(1, 0)
	assert.Equal(t, 1.0, tb.capacity)
}

func TestPerClientLimiterIsolation(t *testing.T) {
	l := NewPerClientLimiter(60, 1)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "同一客户端的第二个请求应被限流")
	assert.True(t, l.Allow("10.0.0.2"), "不同客户端之间相互独立")
}

func TestPerClientLimiterPrune(t *testing.T) {
	l := NewPerClientLimiter(60, 1)
	l.Allow("10.0.0.1")

	l.mutex.Lock()
	l.buckets["10.0.0.1"].lastSeen = time.Now().Add(-2 * staleClientTTL)
	l.mutex.Unlock()

	l.prune()

	l.mutex.Lock()
	_, exists := l.buckets["10.0.0.1"]
	l.mutex.Unlock()
	assert.False(t, exists, "过期客户端的桶应被清理")
}
