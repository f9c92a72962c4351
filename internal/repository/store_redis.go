package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"learnease/pkg/redis"
)

// RedisStore 基于 Redis 字符串键的快照存储
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore 创建 RedisStore
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	blob, err := s.client.GetBlob(ctx, s.key)
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrStateNotFound
	}
	return blob, err
}

func (s *RedisStore) Save(ctx context.Context, blob []byte) error {
	return s.client.SetBlob(ctx, s.key, blob)
}

func (s *RedisStore) Reset(ctx context.Context) error {
	return s.client.DeleteBlob(ctx, s.key)
}

func (s *RedisStore) Export(ctx context.Context) ([]byte, error) {
	return s.Load(ctx)
}

func (s *RedisStore) Import(ctx context.Context, blob []byte) error {
	return s.Save(ctx, blob)
}

// RedisNotifier 通过 Redis PUBLISH 向其他进程转发状态变更信号
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisNotifier 创建 RedisNotifier
func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

// Notify 发布失败只记录日志，不影响已完成的写入
func (n *RedisNotifier) Notify(ctx context.Context, evt ChangeEvent) {
	if err := n.client.PublishStateChanged(ctx, evt.Version); err != nil {
		n.logger.Warn("广播状态变更失败", zap.Int64("version", evt.Version), zap.Error(err))
	}
}
