package middleware

import (
	"context"
	"sync"
	"time"
)

// RequestPacer 控制对同一上游接口的请求间隔，避免高频访问被限流。
// 并发调用时依次排队取号，各自睡到自己的时间槽
type RequestPacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

// NewRequestPacer 创建请求间隔控制器，interval<=0 表示不限速
func NewRequestPacer(interval time.Duration) *RequestPacer {
	return &RequestPacer{interval: interval}
}

// Wait 阻塞到下一个允许发起请求的时间点，上下文取消时提前返回
func (p *RequestPacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	slot := p.next
	if slot.Before(now) {
		slot = now
	}
	p.next = slot.Add(p.interval)
	p.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
