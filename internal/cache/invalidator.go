// Package cache 提供缓存失效协调器
// 缓存失效是尽力而为的，失败只记录日志，不影响已提交的写入
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/noteledger/note-ledger-service/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Invalidator 缓存失效协调器接口
type Invalidator interface {
	// InvalidateUserNotes 使指定用户的笔记列表缓存失效
	InvalidateUserNotes(ctx context.Context, uids ...int64) error
	// Close 释放底层连接
	Close() error
}

// Config Redis 缓存配置
type Config struct {
	// Addr Redis 地址，空则禁用缓存失效
	Addr string `yaml:"addr"`
	// Password Redis 密码
	Password string `yaml:"password"`
	// DB Redis 数据库编号
	DB int `yaml:"db" default:"0"`
	// Timeout 单次失效操作超时
	Timeout time.Duration `yaml:"timeout" default:"2s"`
}

// redisInvalidator 基于 Redis 的实现，DEL 用户笔记列表键
type redisInvalidator struct {
	client  *redis.Client
	timeout time.Duration
	log     *zap.Logger
}

// NewRedisInvalidator 创建 Redis 缓存失效协调器
func NewRedisInvalidator(cfg Config, log *zap.Logger) Invalidator {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	return &redisInvalidator{client: client, timeout: timeout, log: log}
}

// userNotesKey 用户笔记列表的缓存键
func userNotesKey(uid int64) string {
	return fmt.Sprintf("user:%d:notes", uid)
}

// InvalidateUserNotes 删除用户笔记列表缓存键
func (r *redisInvalidator) InvalidateUserNotes(ctx context.Context, uids ...int64) error {
	if len(uids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(uids))
	for _, uid := range uids {
		keys = append(keys, userNotesKey(uid))
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("cache invalidation failed",
			zap.String(logger.FieldError, err.Error()),
			zap.Int64s("uids", uids))
		return err
	}
	return nil
}

// Close 关闭 Redis 连接
func (r *redisInvalidator) Close() error {
	return r.client.Close()
}

// noopInvalidator 未配置缓存时的空实现
type noopInvalidator struct{}

// NewNoopInvalidator 创建空缓存失效协调器
func NewNoopInvalidator() Invalidator {
	return noopInvalidator{}
}

func (noopInvalidator) InvalidateUserNotes(ctx context.Context, uids ...int64) error {
	return nil
}

func (noopInvalidator) Close() error {
	return nil
}
