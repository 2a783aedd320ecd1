package metrics

import (
	"context"
)

// IncrementEnqueuer 投递计数任务的队列客户端
type IncrementEnqueuer interface {
	Enabled() bool
	EnqueueMetricIncrement(ctx context.Context, name string, amount int64) error
}

// QueueSink 将计数投递到异步队列，由 worker 落到实际计数器
type QueueSink struct {
	queue    IncrementEnqueuer
	fallback Sink
}

// NewQueueSink 创建队列计数器；队列不可用时直接写入 fallback
func NewQueueSink(queue IncrementEnqueuer, fallback Sink) *QueueSink {
	return &QueueSink{queue: queue, fallback: fallback}
}

// Increment 投递计数任务
func (s *QueueSink) Increment(ctx context.Context, name string, amount int64) error {
	if s.queue != nil && s.queue.Enabled() {
		return s.queue.EnqueueMetricIncrement(ctx, name, amount)
	}
	if s.fallback != nil {
		return s.fallback.Increment(ctx, name, amount)
	}
	return ErrSinkUnavailable
}

// Snapshot 读取 fallback 中的计数
func (s *QueueSink) Snapshot(ctx context.Context) (map[string]int64, error) {
	if reader, ok := s.fallback.(Reader); ok {
		return reader.Snapshot(ctx)
	}
	return nil, ErrSinkUnavailable
}
