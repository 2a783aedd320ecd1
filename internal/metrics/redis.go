package metrics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tweetboard/internal/constants"

	"github.com/redis/go-redis/v9"
)

// RedisSink 基于 Redis INCRBY 的计数器
type RedisSink struct {
	client *redis.Client
	prefix string
}

// NewRedisSink 创建 Redis 计数器
func NewRedisSink(client *redis.Client, prefix string) *RedisSink {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = constants.RedisPrefixDefault
	}
	return &RedisSink{client: client, prefix: prefix}
}

// Increment 累加计数
func (s *RedisSink) Increment(ctx context.Context, name string, amount int64) error {
	if s == nil || s.client == nil {
		return ErrSinkUnavailable
	}
	return s.client.IncrBy(ctx, s.key(name), amount).Err()
}

// Snapshot 读取全部已知计数器
func (s *RedisSink) Snapshot(ctx context.Context) (map[string]int64, error) {
	if s == nil || s.client == nil {
		return nil, ErrSinkUnavailable
	}
	keys := make([]string, 0, len(constants.MetricNames))
	for _, name := range constants.MetricNames {
		keys = append(keys, s.key(name))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(constants.MetricNames))
	for i, name := range constants.MetricNames {
		out[name] = 0
		raw, ok := values[i].(string)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse counter %s: %w", name, err)
		}
		out[name] = parsed
	}
	return out, nil
}

func (s *RedisSink) key(name string) string {
	return fmt.Sprintf("%s:metrics:%s", s.prefix, strings.TrimSpace(name))
}
