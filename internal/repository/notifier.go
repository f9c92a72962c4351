package repository

import (
	"context"
	"sync"
	"time"
)

// ChangeEvent 状态变更信号，不保证携带具体变更内容
type ChangeEvent struct {
	Version int64     `json:"version"`
	At      time.Time `json:"at"`
}

// Notifier 状态变更通知通道（fire-and-forget）
type Notifier interface {
	Notify(ctx context.Context, evt ChangeEvent)
}

// MultiNotifier 依次转发给多个通道
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, evt ChangeEvent) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, evt)
		}
	}
}

// Broadcaster 进程内广播：每次变更对每个订阅者至多投递一次，订阅者来不及消费时直接丢弃
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan ChangeEvent
	nextID int
	buffer int
}

// NewBroadcaster 创建广播器，buffer 为每个订阅者的缓冲长度
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = 1
	}
	return &Broadcaster{subs: make(map[int]chan ChangeEvent), buffer: buffer}
}

// Subscribe 订阅变更；调用返回的 cancel 取消订阅并关闭通道
func (b *Broadcaster) Subscribe() (<-chan ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan ChangeEvent, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Notify 非阻塞投递
func (b *Broadcaster) Notify(_ context.Context, evt ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Subscribers 当前订阅者数量
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
