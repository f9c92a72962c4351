package repository

import (
	"context"
	"time"
)

// Latency 模拟网络延迟策略，在每次读写进入临界区之前执行
type Latency interface {
	Wait(ctx context.Context) error
}

// NoLatency 不延迟（测试默认）
type NoLatency struct{}

func (NoLatency) Wait(ctx context.Context) error { return ctx.Err() }

// FixedLatency 固定延迟，可被 ctx 取消
type FixedLatency time.Duration

func (d FixedLatency) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
